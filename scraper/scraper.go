package scraper

import (
	"net/url"
	"strings"
	"time"

	Logger "github.com/Luismorlan/newsagg/utils/log"
	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"
	"github.com/pkg/errors"
)

const (
	// Bound on the whole page load. Comment pages are best-effort, a slow
	// site should not stall an enrichment worker for long.
	defaultScrapeTimeout = 8 * time.Second

	defaultUserAgent = "Mozilla/5.0 (compatible; newsagg/1.0)"

	redditCommentSelector     = "shreddit-comment, .commentarea"
	hackerNewsCommentSelector = ".comment-tree"
	genericCommentSelector    = "#comments, .comments, article"
)

// CommentScraper fetches the discussion-thread HTML behind a comment URL.
// An empty result with nil error means the page loaded but carried no
// recognizable comment content.
type CommentScraper interface {
	Scrape(url string) (string, error)
}

// CollyCommentScraper extracts comment content with a per-site selector
// strategy: reddit and Hacker News threads have known markup, anything else
// falls back to a generic guess.
type CollyCommentScraper struct {
	Timeout   time.Duration
	UserAgent string
}

func NewCollyCommentScraper() *CollyCommentScraper {
	return &CollyCommentScraper{
		Timeout:   defaultScrapeTimeout,
		UserAgent: defaultUserAgent,
	}
}

func (s *CollyCommentScraper) Scrape(pageUrl string) (string, error) {
	c := colly.NewCollector(colly.UserAgent(s.UserAgent))
	c.SetRequestTimeout(s.Timeout)

	var sb strings.Builder
	c.OnHTML(selectorForUrl(pageUrl), func(e *colly.HTMLElement) {
		html, err := goquery.OuterHtml(e.DOM)
		if err != nil {
			Logger.Log.Warnf("fail to serialize comment node from %s: %v", pageUrl, err)
			return
		}
		sb.WriteString(html)
	})

	if err := c.Visit(pageUrl); err != nil {
		return "", errors.Wrapf(err, "fail to scrape %s", pageUrl)
	}
	c.Wait()

	return sb.String(), nil
}

func selectorForUrl(pageUrl string) string {
	parsed, err := url.Parse(pageUrl)
	if err != nil {
		return genericCommentSelector
	}
	host := parsed.Hostname()
	switch {
	case strings.HasSuffix(host, "reddit.com"):
		return redditCommentSelector
	case host == "news.ycombinator.com":
		return hackerNewsCommentSelector
	default:
		return genericCommentSelector
	}
}
