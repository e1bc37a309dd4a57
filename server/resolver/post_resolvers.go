package resolver

import (
	"strconv"

	"github.com/Luismorlan/newsagg/model"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Posts returns stored posts, either in storage's natural order or, with
// interweave set, round-robin merged across per-(source, sub) groups so that
// no single prolific source dominates the page.
func (r *RootResolver) Posts(args struct {
	Limit      *int32
	Interweave bool
}) ([]*model.PostView, error) {
	var posts []*model.StoredPost

	if args.Interweave {
		if err := r.DB.Find(&posts).Error; err != nil {
			return nil, errors.Wrap(err, "fail to query posts")
		}
		posts = interweavePosts(posts)
		if args.Limit != nil && int(*args.Limit) < len(posts) {
			posts = posts[:*args.Limit]
		}
		return postsToViews(posts), nil
	}

	query := r.DB
	if args.Limit != nil {
		query = query.Limit(int(*args.Limit))
	}
	if err := query.Find(&posts).Error; err != nil {
		return nil, errors.Wrap(err, "fail to query posts")
	}
	return postsToViews(posts), nil
}

// Post looks up a single post by its storage key. A missing or malformed id
// resolves to null rather than an error.
func (r *RootResolver) Post(args struct{ ID graphql.ID }) (*model.PostView, error) {
	id, err := strconv.ParseInt(string(args.ID), 10, 64)
	if err != nil {
		return nil, nil
	}

	var post model.StoredPost
	res := r.DB.First(&post, id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(res.Error, "fail to query post")
	}
	return postToView(&post), nil
}

// GetDetailedPosts fetches one post by external id plus a best-effort batch
// of surrounding posts. A missing primary id fails the whole call, missing
// surrounding ids are silently omitted from the result.
func (r *RootResolver) GetDetailedPosts(args struct {
	ID             string
	SurroundingIds []string
}) (*DetailedPostResponse, error) {
	var mainPost model.StoredPost
	if err := r.DB.Where("post_id = ?", args.ID).First(&mainPost).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Errorf("post not found: %s", args.ID)
		}
		return nil, errors.Wrap(err, "fail to query post")
	}

	var surrounding []*model.StoredPost
	if len(args.SurroundingIds) > 0 {
		if err := r.DB.Where("post_id IN ?", args.SurroundingIds).Find(&surrounding).Error; err != nil {
			return nil, errors.Wrap(err, "fail to query surrounding posts")
		}
	}

	return &DetailedPostResponse{
		Post:             postToView(&mainPost),
		SurroundingPosts: postsToViews(surrounding),
	}, nil
}
