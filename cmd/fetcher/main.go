package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/Luismorlan/newsagg/enrichment"
	"github.com/Luismorlan/newsagg/fetcher"
	"github.com/Luismorlan/newsagg/publisher"
	"github.com/Luismorlan/newsagg/scraper"
	"github.com/Luismorlan/newsagg/utils"
	"github.com/Luismorlan/newsagg/utils/dotenv"
	. "github.com/Luismorlan/newsagg/utils/log"
)

var (
	fetchSource = flag.String("fetch", "",
		"source to fetch from: 'Hacker News' or 'Reddit sub [NAME]' (e.g. 'Reddit sub [reactjs]')")
	loop = flag.Bool("loop", false,
		"run in a loop over all default sources, with a backfill sweep after each round")
	intervalMinutes = flag.Int("interval", 10,
		"minutes to wait between sources and between rounds in loop mode")
	limit = flag.Int("limit", fetcher.DefaultFetchLimit,
		"number of top posts to fetch per source")
)

func main() {
	flag.Parse()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	db, err := utils.GetDBConnection()
	if err != nil {
		Log.Fatal("fail to connect to database: ", err)
	}
	if err := utils.InitTables(db); err != nil {
		Log.Fatal("fail to initialize tables: ", err)
	}

	commentScraper := scraper.NewCollyCommentScraper()

	scheduler := enrichment.NewScheduler(db, commentScraper, enrichment.DefaultWorkerCount)
	scheduler.Start()
	defer scheduler.Stop()

	f := &fetcher.Fetcher{
		Processor:  publisher.NewPostProcessor(db, scheduler),
		Backfiller: enrichment.NewBackfiller(db, commentScraper),
	}

	switch {
	case *loop:
		Log.Infof("running in loop mode with %d minute interval", *intervalMinutes)
		f.RunLoop(context.Background(), time.Duration(*intervalMinutes)*time.Minute)
	case *fetchSource != "":
		if err := f.FetchOnce(*fetchSource, *limit); err != nil {
			Log.Error("fetch failed: ", err)
			os.Exit(1)
		}
	default:
		flag.Usage()
		os.Exit(1)
	}
}
