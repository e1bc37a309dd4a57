package collector_builder

import (
	"net/http"
	"regexp"

	"github.com/Luismorlan/newsagg/collector"
	"github.com/Luismorlan/newsagg/collector/clients"
	collector_instances "github.com/Luismorlan/newsagg/collector/instances"
	"github.com/pkg/errors"
)

// Source selectors accepted by the ingestion entry point, e.g.
// "Hacker News" or "Reddit sub [reactjs]".
const HackerNewsSelector = "Hacker News"

var redditSelectorRegex = regexp.MustCompile(`^Reddit sub \[(.+)\]$`)

type CollectorBuilder struct{}

func (CollectorBuilder) NewHackerNewsCollector() collector.PostCollector {
	return &collector_instances.HackerNewsCollector{
		Client: clients.NewDefaultHttpClient(),
	}
}

func (CollectorBuilder) NewRedditCollector(subreddit string) collector.PostCollector {
	// Reddit rejects requests without an explicit user agent.
	header := http.Header{}
	header.Set("User-Agent", collector_instances.RedditUserAgent)
	return &collector_instances.RedditCollector{
		Client:    clients.NewHttpClient(header, nil),
		Subreddit: subreddit,
	}
}

// NewCollectorFromSelector maps a source selector string onto the matching
// collector instance.
func (b CollectorBuilder) NewCollectorFromSelector(selector string) (collector.PostCollector, error) {
	if selector == HackerNewsSelector {
		return b.NewHackerNewsCollector(), nil
	}
	if m := redditSelectorRegex.FindStringSubmatch(selector); m != nil {
		return b.NewRedditCollector(m[1]), nil
	}
	return nil, errors.Errorf("unknown source selector: %q", selector)
}
