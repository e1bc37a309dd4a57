package model

/*

Post is a single normalized record produced by a source adapter for one fetch
cycle. It is consumed by the persistence writer immediately after collection
and then discarded, it is never stored directly.

Source: adapter family this post was fetched from
Sub: subreddit name when Source is REDDIT, nil otherwise
PostId: source-native identifier, dedup key within a source
Title/Author/Url/Text: post metadata, optional
Upvotes: primary ranking signal, optional
PublishedDate: "YYYY-MM-DD HH:MM:SS", normalized from source-native epoch
CommentUrl: canonical link to the discussion thread. Always synthesized for
	Hacker News, derived from the permalink for Reddit.
CommentHtml: scraped discussion thread, absent at collection time and only
	populated later by enrichment.

*/

type Post struct {
	Source        SourceEnum `json:"source"`
	Sub           *string    `json:"sub"`
	PostId        string     `json:"id"`
	Title         *string    `json:"title"`
	Text          *string    `json:"text"`
	Author        *string    `json:"author"`
	Upvotes       *int32     `json:"upvotes"`
	Url           *string    `json:"url"`
	PublishedDate *string    `json:"published_date"`
	CommentUrl    *string    `json:"comment_url"`
	CommentHtml   *string    `json:"comment_html"`
}
