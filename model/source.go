package model

/*

SourceEnum identifies the adapter family a post was fetched from.

The string values are stable identifiers persisted in the posts table and
exposed verbatim through the query API, so they must never be renamed.

*/

type SourceEnum string

const (
	SourceHackerNews SourceEnum = "HNEWS"
	SourceReddit     SourceEnum = "REDDIT"
)

// IsValid reports whether s is one of the known source families.
func (s SourceEnum) IsValid() bool {
	return s == SourceHackerNews || s == SourceReddit
}

func (s SourceEnum) String() string {
	return string(s)
}
