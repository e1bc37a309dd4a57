package collector

import "time"

const postPublishedDateFormat = "2006-01-02 15:04:05"

// NullableString returns a pointer to s, or nil when s is empty. Upstream
// APIs omit fields freely and an absent field should stay absent in the
// normalized record.
func NullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// FormatPublishedDate normalizes a source-native epoch timestamp into the
// canonical "YYYY-MM-DD HH:MM:SS" form used across storage and the API.
func FormatPublishedDate(epoch int64) string {
	return time.Unix(epoch, 0).Format(postPublishedDateFormat)
}
