package enrichment

import (
	"context"
	"time"

	"github.com/Luismorlan/newsagg/model"
	"github.com/Luismorlan/newsagg/scraper"
	. "github.com/Luismorlan/newsagg/utils/log"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

const (
	// Cap per sweep, the rest is picked up by the next invocation.
	backfillBatchSize = 20

	// Courtesy pacing towards the scrape backend.
	defaultBackfillInterval = time.Second
)

// Backfiller is the offline variant of enrichment: a periodic sweep over
// stored posts that still miss their discussion thread, newest first,
// processed sequentially with a fixed delay between posts instead of the
// scheduler's bounded-concurrency path.
type Backfiller struct {
	DB      *gorm.DB
	Scraper scraper.CommentScraper

	// Delay between consecutive posts. Zero disables pacing, which is only
	// sensible in tests.
	Interval time.Duration
}

func NewBackfiller(db *gorm.DB, sc scraper.CommentScraper) *Backfiller {
	return &Backfiller{
		DB:       db,
		Scraper:  sc,
		Interval: defaultBackfillInterval,
	}
}

// Run executes one sweep and returns how many posts were updated.
func (b *Backfiller) Run(ctx context.Context) (int, error) {
	var posts []*model.StoredPost
	err := b.DB.
		Where("comment_html IS NULL OR comment_html = ''").
		Order("created_at DESC").
		Limit(backfillBatchSize).
		Find(&posts).Error
	if err != nil {
		return 0, errors.Wrap(err, "fail to query posts pending enrichment")
	}
	if len(posts) == 0 {
		Log.Info("backfill sweep found no posts pending enrichment")
		return 0, nil
	}
	Log.Infof("backfill sweep found %d posts pending enrichment", len(posts))

	limiter := rate.NewLimiter(rate.Every(b.Interval), 1)
	updated := 0
	for _, post := range posts {
		if err := limiter.Wait(ctx); err != nil {
			return updated, err
		}

		if !post.HasCommentUrl() {
			if !reconstructCommentUrl(post) {
				Log.Warnf("post %s has no comment url and none can be derived, skipping", post.PostId)
				continue
			}
			res := b.DB.Model(&model.StoredPost{}).
				Where("id = ?", post.Id).
				Updates(map[string]interface{}{
					"comment_url": *post.CommentUrl,
					"updated_at":  time.Now(),
				})
			if res.Error != nil {
				Log.Errorf("fail to store derived comment url for post %s: %v", post.PostId, res.Error)
				continue
			}
		}

		if enrichStoredPost(b.DB, b.Scraper, post) {
			updated++
		}
	}

	Log.Infof("backfill sweep updated %d/%d posts", updated, len(posts))
	return updated, nil
}
