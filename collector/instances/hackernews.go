package collector_instances

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Luismorlan/newsagg/collector"
	"github.com/Luismorlan/newsagg/collector/clients"
	"github.com/Luismorlan/newsagg/model"
	Logger "github.com/Luismorlan/newsagg/utils/log"
	"github.com/pkg/errors"
)

const (
	HackerNewsTopStoriesUrl      = "https://hacker-news.firebaseio.com/v0/topstories.json"
	HackerNewsItemUrlTemplate    = "https://hacker-news.firebaseio.com/v0/item/%d.json"
	HackerNewsCommentUrlTemplate = "https://news.ycombinator.com/item?id=%s"

	hackerNewsFreshWindow = 7 * 24 * time.Hour
	hackerNewsMinScore    = 20
)

// Only stories whose title mentions programming or AI make it through. The
// match is case-insensitive substring containment.
var hackerNewsKeywords = []string{
	"program",
	"ml",
	"ai",
	"machine learning",
	"artificial intelligence",
	"agent",
	"coding",
	"developer",
	"development",
	"source",
	"code",
	"open-source",
	"python",
	"javascript",
	"typescript",
	"css",
	"server",
	"browser",
}

type hackerNewsItem struct {
	Id    int64  `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
	By    string `json:"by"`
	Score int32  `json:"score"`
	Time  int64  `json:"time"`
	Url   string `json:"url"`
}

// HackerNewsCollector fetches the current top story id list, then walks it
// sequentially fetching item details until enough qualifying stories are
// collected or the list is exhausted.
type HackerNewsCollector struct {
	Client *clients.HttpClient

	// Endpoint overrides for testing, zero value means production URLs.
	TopStoriesUrl   string
	ItemUrlTemplate string
}

func (c *HackerNewsCollector) Source() model.SourceEnum {
	return model.SourceHackerNews
}

func (c *HackerNewsCollector) Collect(limit int) ([]model.Post, error) {
	topStoriesUrl := c.TopStoriesUrl
	if topStoriesUrl == "" {
		topStoriesUrl = HackerNewsTopStoriesUrl
	}
	itemUrlTemplate := c.ItemUrlTemplate
	if itemUrlTemplate == "" {
		itemUrlTemplate = HackerNewsItemUrlTemplate
	}

	var storyIds []int64
	if err := collector.HttpGetAndParseJsonResponse(c.Client, topStoriesUrl, &storyIds); err != nil {
		return nil, errors.Wrap(err, "fail to fetch hacker news top stories")
	}

	cutoff := time.Now().Add(-hackerNewsFreshWindow)
	posts := []model.Post{}
	for _, storyId := range storyIds {
		if len(posts) >= limit {
			break
		}

		var item hackerNewsItem
		if err := collector.HttpGetAndParseJsonResponse(
			c.Client, fmt.Sprintf(itemUrlTemplate, storyId), &item); err != nil {
			// One broken item must not abort the whole batch.
			Logger.Log.Warnf("fail to fetch hacker news item %d, skipping: %v", storyId, err)
			continue
		}

		if time.Unix(item.Time, 0).Before(cutoff) {
			continue
		}
		if !titleMatchesKeywords(item.Title) || item.Score <= hackerNewsMinScore {
			continue
		}

		posts = append(posts, c.toPost(&item))
	}

	return posts, nil
}

func titleMatchesKeywords(title string) bool {
	lowered := strings.ToLower(title)
	for _, keyword := range hackerNewsKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

func (c *HackerNewsCollector) toPost(item *hackerNewsItem) model.Post {
	postId := strconv.FormatInt(item.Id, 10)
	publishedDate := collector.FormatPublishedDate(item.Time)
	// HN items never carry a thread link, it is always synthesized.
	commentUrl := fmt.Sprintf(HackerNewsCommentUrlTemplate, postId)
	upvotes := item.Score

	return model.Post{
		Source:        model.SourceHackerNews,
		Sub:           nil,
		PostId:        postId,
		Title:         collector.NullableString(item.Title),
		Text:          collector.NullableString(item.Text),
		Author:        collector.NullableString(item.By),
		Upvotes:       &upvotes,
		Url:           collector.NullableString(item.Url),
		PublishedDate: &publishedDate,
		CommentUrl:    &commentUrl,
	}
}
