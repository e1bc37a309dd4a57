package fetcher

import (
	"context"
	"time"

	"github.com/Luismorlan/newsagg/collector"
	collector_builder "github.com/Luismorlan/newsagg/collector/builder"
	"github.com/Luismorlan/newsagg/enrichment"
	"github.com/Luismorlan/newsagg/publisher"
	. "github.com/Luismorlan/newsagg/utils/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// DefaultFetchArgs is the source rotation a loop run walks through.
var DefaultFetchArgs = []string{
	"Hacker News",
	"Reddit sub [reactjs]",
	"Reddit sub [Python]",
	"Reddit sub [ArtificialInteligence]",
	"Reddit sub [ChatGPTPro]",
	"Reddit sub [LocalLLaMA]",
	"Reddit sub [cybersecurity]",
	"Reddit sub [netsec]",
}

const DefaultFetchLimit = 20

// Fetcher drives ingestion cycles: fetch from one source, normalize, dedup,
// persist, and hand freshly stored posts to the enrichment scheduler. Each
// source failure is scoped to its own cycle.
type Fetcher struct {
	Processor  *publisher.PostProcessor
	Backfiller *enrichment.Backfiller

	Builder collector_builder.CollectorBuilder
}

// FetchOnce runs a single ingestion cycle for the given source selector.
func (f *Fetcher) FetchOnce(selector string, limit int) error {
	coll, err := f.Builder.NewCollectorFromSelector(selector)
	if err != nil {
		return err
	}
	return f.runCycle(selector, coll, limit)
}

func (f *Fetcher) runCycle(name string, coll collector.PostCollector, limit int) error {
	cycleLog := Log.WithField("cycle", uuid.New().String()).WithField("source", name)
	cycleLog.Infof("fetch cycle starts, limit %d", limit)

	posts, err := coll.Collect(limit)
	if err != nil {
		return errors.Wrapf(err, "fetch cycle failed for %s", name)
	}
	if len(posts) == 0 {
		cycleLog.Info("fetch cycle collected no posts")
		return nil
	}

	saved, skipped, err := f.Processor.SavePosts(posts)
	if err != nil {
		return errors.Wrapf(err, "fail to persist batch for %s", name)
	}
	cycleLog.Infof("fetch cycle completed: %d collected, %d saved, %d skipped", len(posts), saved, skipped)
	return nil
}

// RunLoop walks the default source rotation forever with the given delay
// between sources, running a comment backfill sweep after each full round.
// A failing cycle is logged and the loop moves on.
func (f *Fetcher) RunLoop(ctx context.Context, interval time.Duration) {
	for {
		Log.Info("starting fetch round over all sources")
		for idx, selector := range DefaultFetchArgs {
			if err := f.FetchOnce(selector, DefaultFetchLimit); err != nil {
				Log.Errorf("error while fetching from %s: %v", selector, err)
			}
			if idx < len(DefaultFetchArgs)-1 {
				Log.Infof("waiting %v before fetching next source", interval)
				if !sleepCtx(ctx, interval) {
					return
				}
			}
		}

		Log.Info("fetch round completed, running comment backfill sweep")
		if f.Backfiller != nil {
			if _, err := f.Backfiller.Run(ctx); err != nil {
				Log.Errorf("error during comment backfill sweep: %v", err)
			}
		}

		Log.Infof("next fetch round at %s", time.Now().Add(interval).Format("2006-01-02 15:04:05"))
		if !sleepCtx(ctx, interval) {
			return
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
