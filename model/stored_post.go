package model

import (
	"time"
)

/*

StoredPost is the persisted form of a Post.

Id: storage-assigned surrogate key, immutable
CreatedAt: time when the row is inserted
UpdatedAt: refreshed on every mutating write

Rows are insert-only except for CommentHtml/UpdatedAt which enrichment
updates at most once per scrape. At most one row may exist per
(source, post_id) pair, enforced by a unique index so that a race between
concurrent writers degrades into a handled conflict instead of a duplicate.

*/

type StoredPost struct {
	Id            int64 `gorm:"primaryKey;autoIncrement"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Source        SourceEnum `gorm:"uniqueIndex:idx_posts_source_post_id"`
	Sub           *string
	PostId        string `gorm:"uniqueIndex:idx_posts_source_post_id"`
	Title         *string
	Text          *string
	Author        *string
	Upvotes       *int32
	Url           *string
	PublishedDate *string
	CommentUrl    *string
	CommentHtml   *string
}

func (StoredPost) TableName() string {
	return "posts"
}

// HasCommentUrl reports whether the row carries a non-empty discussion
// thread link.
func (p *StoredPost) HasCommentUrl() bool {
	return p.CommentUrl != nil && *p.CommentUrl != ""
}

// HasCommentHtml reports whether enrichment already populated the scraped
// discussion thread for this row.
func (p *StoredPost) HasCommentHtml() bool {
	return p.CommentHtml != nil && *p.CommentHtml != ""
}
