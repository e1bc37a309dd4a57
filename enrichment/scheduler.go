package enrichment

import (
	"sync"

	"github.com/Luismorlan/newsagg/model"
	"github.com/Luismorlan/newsagg/scraper"
	. "github.com/Luismorlan/newsagg/utils/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	// At most this many scrape operations run at any instant. Comment pages
	// are slow to render and the scrape backend tolerates little parallelism.
	DefaultWorkerCount = 5

	defaultQueueSize = 256
)

// Scheduler is a bounded worker pool that scrapes discussion threads for
// freshly stored posts. The ingestion path enqueues external ids and returns
// immediately, workers reload each post, scrape its comment url and write the
// result back independently per row.
//
// The pool's lifecycle belongs to the process: Start it once at startup and
// Stop it on shutdown, which drains whatever is still queued.
type Scheduler struct {
	db      *gorm.DB
	scraper scraper.CommentScraper
	workers int

	jobs chan string
	wg   sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func NewScheduler(db *gorm.DB, sc scraper.CommentScraper, workers int) *Scheduler {
	if workers <= 0 {
		workers = DefaultWorkerCount
	}
	return &Scheduler{
		db:      db,
		scraper: sc,
		workers: workers,
		jobs:    make(chan string, defaultQueueSize),
	}
}

// Start launches the worker goroutines.
func (s *Scheduler) Start() {
	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
	Log.Infof("enrichment scheduler started with %d workers", s.workers)
}

// Stop closes the queue and waits for the workers to drain it.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.jobs)
	s.mu.Unlock()

	s.wg.Wait()
	Log.Info("enrichment scheduler stopped")
}

// Enqueue schedules scraping for the given external ids. It deduplicates the
// batch, never blocks and never fails the caller: when the queue is full the
// overflow is dropped with a warning, those posts stay eligible for the
// periodic backfill sweep.
func (s *Scheduler) Enqueue(postIds []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		Log.Warnf("enrichment scheduler already stopped, dropping %d jobs", len(postIds))
		return
	}

	seen := make(map[string]bool, len(postIds))
	for _, postId := range postIds {
		if postId == "" || seen[postId] {
			continue
		}
		seen[postId] = true

		select {
		case s.jobs <- postId:
		default:
			Log.Warnf("enrichment queue full, dropping job for post %s", postId)
		}
	}
}

func (s *Scheduler) worker() {
	defer s.wg.Done()
	for postId := range s.jobs {
		if err := s.processPost(postId); err != nil {
			Log.Warnf("enrichment failed for post %s: %v", postId, err)
		}
	}
}

// processPost reloads the post by external id, since time may have passed
// between enqueue and execution, then runs the shared enrichment step.
func (s *Scheduler) processPost(postId string) error {
	var post model.StoredPost
	if err := s.db.Where("post_id = ?", postId).First(&post).Error; err != nil {
		return errors.Wrapf(err, "fail to reload post %s", postId)
	}
	enrichStoredPost(s.db, s.scraper, &post)
	return nil
}
