package publisher

import (
	"fmt"
	"sync"
	"time"

	"github.com/Luismorlan/newsagg/model"
	. "github.com/Luismorlan/newsagg/utils/log"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentSink receives the external ids of freshly inserted posts that still
// need their discussion thread scraped. Push must not block the caller.
type CommentSink interface {
	Enqueue(postIds []string)
}

// PostProcessor is the deduplicating persistence writer: it takes one fetch
// cycle's normalized posts, drops the ones already stored and commits the
// rest as a single transaction.
type PostProcessor struct {
	DB   *gorm.DB
	Sink CommentSink

	// This map caches every (source, post id) pair seen since the processor
	// started so that repeat cycles don't hit the DB to find out whether a
	// post exists. It can return false negative: a post missing from the map
	// may still exist in the DB, which the lookup below then catches.
	m             sync.RWMutex
	existingIdMap map[string]bool
}

func NewPostProcessor(db *gorm.DB, sink CommentSink) *PostProcessor {
	return &PostProcessor{
		DB:            db,
		Sink:          sink,
		existingIdMap: make(map[string]bool),
	}
}

func dedupKey(source model.SourceEnum, postId string) string {
	return fmt.Sprintf("%s:%s", source, postId)
}

// Check whether a post exists in DB by (source, post id). It firstly goes
// through the local cache, if not found there looks up the DB and populates
// the cache on a hit.
func (p *PostProcessor) isPostExist(source model.SourceEnum, postId string) bool {
	key := dedupKey(source, postId)

	p.m.RLock()
	if _, ok := p.existingIdMap[key]; ok {
		p.m.RUnlock()
		return true
	}
	p.m.RUnlock()

	var count int64
	p.DB.Model(&model.StoredPost{}).
		Where("source = ? AND post_id = ?", source, postId).
		Count(&count)
	if count == 0 {
		return false
	}

	p.m.Lock()
	p.existingIdMap[key] = true
	p.m.Unlock()
	return true
}

func (p *PostProcessor) markPostExist(source model.SourceEnum, postId string) {
	p.m.Lock()
	p.existingIdMap[dedupKey(source, postId)] = true
	p.m.Unlock()
}

// SavePosts persists all not-yet-stored posts of a batch in one transaction
// and reports how many were saved and how many skipped as duplicates. On
// commit failure nothing is persisted and no enrichment is scheduled.
//
// The (source, post_id) unique index is the real dedup invariant: the
// pre-check only exists for counting and to keep the staged batch small, a
// concurrent writer racing past it lands on the index conflict which is
// ignored rather than surfaced.
func (p *PostProcessor) SavePosts(posts []model.Post) (saved int, skipped int, err error) {
	staged := []*model.StoredPost{}
	now := time.Now()
	for idx := range posts {
		post := &posts[idx]
		if post.PostId == "" || !post.Source.IsValid() {
			Log.Warnf("dropping malformed post without source/id: %+v", post)
			skipped++
			continue
		}
		if p.isPostExist(post.Source, post.PostId) {
			skipped++
			continue
		}

		stored := &model.StoredPost{}
		if err := copier.Copy(stored, post); err != nil {
			return 0, 0, errors.Wrap(err, "fail to stage post for insertion")
		}
		stored.CreatedAt = now
		stored.UpdatedAt = now
		staged = append(staged, stored)
	}

	if len(staged) > 0 {
		err = p.DB.Transaction(func(tx *gorm.DB) error {
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "source"}, {Name: "post_id"}},
				DoNothing: true,
			}).Create(&staged)
			if res.Error != nil {
				return res.Error
			}
			saved = int(res.RowsAffected)
			return nil
		})
		if err != nil {
			return 0, 0, errors.Wrap(err, "fail to commit post batch")
		}
	}
	skipped += len(staged) - saved

	// Everything staged is now in the DB, either from this commit or from a
	// concurrent writer that won the index conflict.
	enqueueIds := []string{}
	for _, stored := range staged {
		p.markPostExist(stored.Source, stored.PostId)
		if stored.HasCommentUrl() {
			enqueueIds = append(enqueueIds, stored.PostId)
		}
	}
	if p.Sink != nil && len(enqueueIds) > 0 {
		p.Sink.Enqueue(enqueueIds)
	}

	return saved, skipped, nil
}
