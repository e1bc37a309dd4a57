package enrichment

import (
	"fmt"
	"time"

	"github.com/Luismorlan/newsagg/model"
	"github.com/Luismorlan/newsagg/scraper"
	. "github.com/Luismorlan/newsagg/utils/log"
	"gorm.io/gorm"
)

const (
	redditCommentUrlTemplate     = "https://www.reddit.com/r/%s/comments/%s"
	hackerNewsCommentUrlTemplate = "https://news.ycombinator.com/item?id=%s"
)

// enrichStoredPost scrapes the post's discussion thread and writes the result
// back, touching only comment_html and updated_at. Returns true iff the row
// was updated. All failures are logged and swallowed, a post that fails here
// stays eligible for a later backfill sweep.
func enrichStoredPost(db *gorm.DB, sc scraper.CommentScraper, post *model.StoredPost) bool {
	if !post.HasCommentUrl() {
		Log.Debugf("post %s has no comment url, skipping enrichment", post.PostId)
		return false
	}

	html, err := sc.Scrape(*post.CommentUrl)
	if err != nil {
		Log.Warnf("fail to scrape comments for post %s from %s: %v", post.PostId, *post.CommentUrl, err)
		return false
	}
	if html == "" {
		Log.Infof("no comment content found for post %s at %s", post.PostId, *post.CommentUrl)
		return false
	}

	res := db.Model(&model.StoredPost{}).
		Where("id = ?", post.Id).
		Updates(map[string]interface{}{
			"comment_html": html,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		Log.Errorf("fail to store scraped comments for post %s: %v", post.PostId, res.Error)
		return false
	}
	return true
}

// reconstructCommentUrl derives the canonical thread link from what the row
// already carries, for rows persisted before the link was synthesized at
// collection time. Returns false when no link can be derived.
func reconstructCommentUrl(post *model.StoredPost) bool {
	switch post.Source {
	case model.SourceReddit:
		if post.Sub == nil || *post.Sub == "" {
			return false
		}
		commentUrl := fmt.Sprintf(redditCommentUrlTemplate, *post.Sub, post.PostId)
		post.CommentUrl = &commentUrl
		return true
	case model.SourceHackerNews:
		commentUrl := fmt.Sprintf(hackerNewsCommentUrlTemplate, post.PostId)
		post.CommentUrl = &commentUrl
		return true
	default:
		return false
	}
}
