package fetcher

import (
	"sync"
	"testing"

	"github.com/Luismorlan/newsagg/model"
	"github.com/Luismorlan/newsagg/publisher"
	"github.com/Luismorlan/newsagg/utils"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCollector struct {
	posts []model.Post
	err   error
}

func (f *fakeCollector) Source() model.SourceEnum {
	return model.SourceReddit
}

func (f *fakeCollector) Collect(limit int) ([]model.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.posts) {
		return f.posts[:limit], nil
	}
	return f.posts, nil
}

type recordingSink struct {
	mu  sync.Mutex
	ids []string
}

func (s *recordingSink) Enqueue(postIds []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = append(s.ids, postIds...)
}

func redditFetchPost(postId string, commentUrl string) model.Post {
	sub := "Python"
	title := "title for " + postId
	post := model.Post{
		Source: model.SourceReddit,
		Sub:    &sub,
		PostId: postId,
		Title:  &title,
	}
	if commentUrl != "" {
		post.CommentUrl = &commentUrl
	}
	return post
}

func TestRunCyclePersistsCollectedPosts(t *testing.T) {
	db := utils.CreateTempDB(t)
	sink := &recordingSink{}
	f := &Fetcher{Processor: publisher.NewPostProcessor(db, sink)}

	coll := &fakeCollector{posts: []model.Post{
		redditFetchPost("p1", "https://www.reddit.com/r/Python/comments/p1"),
		redditFetchPost("p2", ""),
	}}

	require.NoError(t, f.runCycle("Reddit sub [Python]", coll, 10))

	var count int64
	require.NoError(t, db.Model(&model.StoredPost{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	// Only the post with a comment url is handed to enrichment.
	assert.Equal(t, []string{"p1"}, sink.ids)
}

func TestRunCycleCollectorFailure(t *testing.T) {
	db := utils.CreateTempDB(t)
	sink := &recordingSink{}
	f := &Fetcher{Processor: publisher.NewPostProcessor(db, sink)}

	coll := &fakeCollector{err: errors.New("upstream timeout")}
	err := f.runCycle("Reddit sub [Python]", coll, 10)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "upstream timeout")

	var count int64
	require.NoError(t, db.Model(&model.StoredPost{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	assert.Empty(t, sink.ids)
}

func TestRunCycleEmptyCollect(t *testing.T) {
	db := utils.CreateTempDB(t)
	sink := &recordingSink{}
	f := &Fetcher{Processor: publisher.NewPostProcessor(db, sink)}

	require.NoError(t, f.runCycle("Reddit sub [Python]", &fakeCollector{}, 10))
	assert.Empty(t, sink.ids)
}

func TestRunCycleRespectsLimit(t *testing.T) {
	db := utils.CreateTempDB(t)
	sink := &recordingSink{}
	f := &Fetcher{Processor: publisher.NewPostProcessor(db, sink)}

	coll := &fakeCollector{posts: []model.Post{
		redditFetchPost("p1", ""),
		redditFetchPost("p2", ""),
		redditFetchPost("p3", ""),
	}}
	require.NoError(t, f.runCycle("Reddit sub [Python]", coll, 2))

	var count int64
	require.NoError(t, db.Model(&model.StoredPost{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestFetchOnceUnknownSelector(t *testing.T) {
	db := utils.CreateTempDB(t)
	f := &Fetcher{Processor: publisher.NewPostProcessor(db, &recordingSink{})}

	assert.Error(t, f.FetchOnce("Usenet group [comp.lang.go]", 10))
}

func TestDefaultFetchArgsAllParse(t *testing.T) {
	f := &Fetcher{}
	for _, selector := range DefaultFetchArgs {
		_, err := f.Builder.NewCollectorFromSelector(selector)
		assert.NoError(t, err, "default selector %q must parse", selector)
	}
}
