package collector_instances

import (
	"fmt"

	"github.com/Luismorlan/newsagg/collector"
	"github.com/Luismorlan/newsagg/collector/clients"
	"github.com/Luismorlan/newsagg/model"
	"github.com/pkg/errors"
)

const (
	RedditTopListingUrlTemplate = "https://www.reddit.com/r/%s/top/.json?t=week"
	RedditBaseUrl               = "https://www.reddit.com"

	RedditUserAgent = "news-fetcher-agent"
)

// Typed response structs instead of a runtime mapping config: the field
// binding is checked at compile time.
type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Id         string  `json:"id"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	Ups        int32   `json:"ups"`
	Url        string  `json:"url"`
	Selftext   string  `json:"selftext"`
	Permalink  string  `json:"permalink"`
	CreatedUtc float64 `json:"created_utc"`
}

// RedditCollector fetches one subreddit's weekly top listing and maps the
// first limit entries verbatim. Unlike Hacker News there is no keyword or
// age filtering, the listing is already curated by reddit's own ranking.
type RedditCollector struct {
	Client    *clients.HttpClient
	Subreddit string

	// Endpoint override for testing, zero value means production URL.
	ListingUrlTemplate string
}

func (c *RedditCollector) Source() model.SourceEnum {
	return model.SourceReddit
}

func (c *RedditCollector) Collect(limit int) ([]model.Post, error) {
	listingUrlTemplate := c.ListingUrlTemplate
	if listingUrlTemplate == "" {
		listingUrlTemplate = RedditTopListingUrlTemplate
	}

	var listing redditListing
	uri := fmt.Sprintf(listingUrlTemplate, c.Subreddit)
	if err := collector.HttpGetAndParseJsonResponse(c.Client, uri, &listing); err != nil {
		return nil, errors.Wrapf(err, "fail to fetch reddit listing for r/%s", c.Subreddit)
	}

	posts := []model.Post{}
	for _, child := range listing.Data.Children {
		if len(posts) >= limit {
			break
		}
		posts = append(posts, c.toPost(&child.Data))
	}

	return posts, nil
}

func (c *RedditCollector) toPost(item *redditPost) model.Post {
	sub := c.Subreddit
	publishedDate := collector.FormatPublishedDate(int64(item.CreatedUtc))
	upvotes := item.Ups

	post := model.Post{
		Source:        model.SourceReddit,
		Sub:           &sub,
		PostId:        item.Id,
		Title:         collector.NullableString(item.Title),
		Text:          collector.NullableString(item.Selftext),
		Author:        collector.NullableString(item.Author),
		Upvotes:       &upvotes,
		Url:           collector.NullableString(item.Url),
		PublishedDate: &publishedDate,
	}
	if item.Permalink != "" {
		commentUrl := RedditBaseUrl + item.Permalink
		post.CommentUrl = &commentUrl
	}
	return post
}
