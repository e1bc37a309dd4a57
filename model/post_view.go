package model

// PostView is the GraphQL-facing shape of a stored post. All fields are
// nullable on the wire. Id carries the source-native post id, not the
// storage surrogate key.
type PostView struct {
	Source        *string
	Sub           *string
	Id            *string
	Title         *string
	Text          *string
	Author        *string
	Upvotes       *int32
	Url           *string
	PublishedDate *string
	CommentUrl    *string
	CommentHtml   *string
}
