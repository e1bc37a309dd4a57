package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/Luismorlan/newsagg/model"
	servergraphql "github.com/Luismorlan/newsagg/server/graphql"
	"github.com/Luismorlan/newsagg/utils"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func int32Ptr(v int32) *int32 {
	return &v
}

func seedPost(t *testing.T, db *gorm.DB, source model.SourceEnum, sub string, postId string, upvotes *int32) *model.StoredPost {
	t.Helper()
	title := "title for " + postId
	post := &model.StoredPost{
		Source:  source,
		PostId:  postId,
		Title:   &title,
		Upvotes: upvotes,
	}
	if sub != "" {
		post.Sub = &sub
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func postIds(views []*model.PostView) []string {
	ids := []string{}
	for _, view := range views {
		ids = append(ids, *view.Id)
	}
	return ids
}

func TestPostsInterweaveRoundRobin(t *testing.T) {
	db := utils.CreateTempDB(t)
	r := NewRootResolver(db)

	seedPost(t, db, model.SourceHackerNews, "", "h1", int32Ptr(100))
	seedPost(t, db, model.SourceHackerNews, "", "h2", int32Ptr(50))
	seedPost(t, db, model.SourceHackerNews, "", "h3", int32Ptr(10))
	seedPost(t, db, model.SourceReddit, "Python", "p1", nil)
	seedPost(t, db, model.SourceReddit, "Python", "p2", int32Ptr(200))
	seedPost(t, db, model.SourceReddit, "golang", "g1", int32Ptr(70))

	views, err := r.Posts(struct {
		Limit      *int32
		Interweave bool
	}{nil, true})
	require.NoError(t, err)

	// Round 0 takes the top post of every group, later rounds keep cycling
	// while exhausted groups drop out.
	assert.Equal(t, []string{"h1", "p2", "g1", "h2", "p1", "h3"}, postIds(views))
}

func TestPostsInterweaveNullUpvotesSortLast(t *testing.T) {
	db := utils.CreateTempDB(t)
	r := NewRootResolver(db)

	seedPost(t, db, model.SourceReddit, "Python", "noVotes1", nil)
	seedPost(t, db, model.SourceReddit, "Python", "high", int32Ptr(500))
	seedPost(t, db, model.SourceReddit, "Python", "noVotes2", nil)
	seedPost(t, db, model.SourceReddit, "Python", "low", int32Ptr(1))

	views, err := r.Posts(struct {
		Limit      *int32
		Interweave bool
	}{nil, true})
	require.NoError(t, err)

	// Null upvotes land at the tail in their original relative order.
	assert.Equal(t, []string{"high", "low", "noVotes1", "noVotes2"}, postIds(views))
}

func TestPostsInterweaveLimitAppliedAfterMerge(t *testing.T) {
	db := utils.CreateTempDB(t)
	r := NewRootResolver(db)

	seedPost(t, db, model.SourceHackerNews, "", "h1", int32Ptr(100))
	seedPost(t, db, model.SourceHackerNews, "", "h2", int32Ptr(50))
	seedPost(t, db, model.SourceReddit, "Python", "p1", int32Ptr(200))
	seedPost(t, db, model.SourceReddit, "Python", "p2", int32Ptr(20))
	seedPost(t, db, model.SourceReddit, "golang", "g1", int32Ptr(70))

	views, err := r.Posts(struct {
		Limit      *int32
		Interweave bool
	}{int32Ptr(3), true})
	require.NoError(t, err)

	// The limit truncates the merged sequence, it does not shrink the scan,
	// so the first round still spans all three groups.
	assert.Equal(t, []string{"h1", "p1", "g1"}, postIds(views))
}

func TestPostsFlatModeHonorsLimit(t *testing.T) {
	db := utils.CreateTempDB(t)
	r := NewRootResolver(db)

	for i := 0; i < 5; i++ {
		seedPost(t, db, model.SourceHackerNews, "", fmt.Sprintf("h%d", i), int32Ptr(int32(i)))
	}

	views, err := r.Posts(struct {
		Limit      *int32
		Interweave bool
	}{int32Ptr(2), false})
	require.NoError(t, err)
	assert.Equal(t, []string{"h0", "h1"}, postIds(views))

	views, err = r.Posts(struct {
		Limit      *int32
		Interweave bool
	}{nil, false})
	require.NoError(t, err)
	assert.Len(t, views, 5)
}

func TestPostByStorageId(t *testing.T) {
	db := utils.CreateTempDB(t)
	r := NewRootResolver(db)

	stored := seedPost(t, db, model.SourceReddit, "Python", "p1", int32Ptr(10))

	view, err := r.Post(struct{ ID graphql.ID }{graphql.ID(fmt.Sprint(stored.Id))})
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, "p1", *view.Id)
	assert.Equal(t, "REDDIT", *view.Source)

	// Unknown and malformed ids both resolve to null, not an error.
	view, err = r.Post(struct{ ID graphql.ID }{graphql.ID("999999")})
	require.NoError(t, err)
	assert.Nil(t, view)

	view, err = r.Post(struct{ ID graphql.ID }{graphql.ID("not-a-number")})
	require.NoError(t, err)
	assert.Nil(t, view)
}

func TestGetDetailedPosts(t *testing.T) {
	db := utils.CreateTempDB(t)
	r := NewRootResolver(db)

	seedPost(t, db, model.SourceHackerNews, "", "main", int32Ptr(42))
	seedPost(t, db, model.SourceHackerNews, "", "near1", int32Ptr(10))
	seedPost(t, db, model.SourceHackerNews, "", "near2", int32Ptr(11))

	resp, err := r.GetDetailedPosts(struct {
		ID             string
		SurroundingIds []string
	}{"main", []string{"near1", "missing", "near2"}})
	require.NoError(t, err)
	assert.Equal(t, "main", *resp.Post.Id)

	// Missing surrounding ids are dropped without complaint.
	assert.ElementsMatch(t, []string{"near1", "near2"}, postIds(resp.SurroundingPosts))
}

func TestGetDetailedPostsMissingPrimaryFails(t *testing.T) {
	db := utils.CreateTempDB(t)
	r := NewRootResolver(db)

	seedPost(t, db, model.SourceHackerNews, "", "near1", int32Ptr(10))

	resp, err := r.GetDetailedPosts(struct {
		ID             string
		SurroundingIds []string
	}{"missing", []string{"near1"}})
	assert.Error(t, err)
	assert.Nil(t, resp)
}

func TestGetDetailedPostsEmptySurrounding(t *testing.T) {
	db := utils.CreateTempDB(t)
	r := NewRootResolver(db)

	seedPost(t, db, model.SourceHackerNews, "", "main", int32Ptr(42))

	resp, err := r.GetDetailedPosts(struct {
		ID             string
		SurroundingIds []string
	}{"main", []string{}})
	require.NoError(t, err)
	assert.Equal(t, "main", *resp.Post.Id)
	assert.Empty(t, resp.SurroundingPosts)
}

func TestSchemaExecutesEndToEnd(t *testing.T) {
	db := utils.CreateTempDB(t)

	seedPost(t, db, model.SourceHackerNews, "", "h1", int32Ptr(100))
	seedPost(t, db, model.SourceReddit, "Python", "p1", int32Ptr(200))

	schema := utils.ParseGraphQLSchema(servergraphql.GetGQLSchema(), NewRootResolver(db))
	resp := schema.Exec(context.Background(),
		`{ posts(interweave: true) { id source sub upvotes } }`, "", nil)
	require.Empty(t, resp.Errors)

	var data struct {
		Posts []struct {
			Id      *string `json:"id"`
			Source  *string `json:"source"`
			Sub     *string `json:"sub"`
			Upvotes *int32  `json:"upvotes"`
		} `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.Len(t, data.Posts, 2)
	assert.Equal(t, "h1", *data.Posts[0].Id)
	assert.Equal(t, "HNEWS", *data.Posts[0].Source)
	assert.Nil(t, data.Posts[0].Sub)
	assert.Equal(t, "p1", *data.Posts[1].Id)
	require.NotNil(t, data.Posts[1].Sub)
	assert.Equal(t, "Python", *data.Posts[1].Sub)
}
