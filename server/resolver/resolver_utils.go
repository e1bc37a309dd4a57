package resolver

import (
	"sort"

	"github.com/Luismorlan/newsagg/model"
	"github.com/Luismorlan/newsagg/utils"
)

func postToView(post *model.StoredPost) *model.PostView {
	source := string(post.Source)
	postId := post.PostId
	return &model.PostView{
		Source:        &source,
		Sub:           post.Sub,
		Id:            &postId,
		Title:         post.Title,
		Text:          post.Text,
		Author:        post.Author,
		Upvotes:       post.Upvotes,
		Url:           post.Url,
		PublishedDate: post.PublishedDate,
		CommentUrl:    post.CommentUrl,
		CommentHtml:   post.CommentHtml,
	}
}

func postsToViews(posts []*model.StoredPost) []*model.PostView {
	views := []*model.PostView{}
	for _, post := range posts {
		views = append(views, postToView(post))
	}
	return views
}

func groupKey(post *model.StoredPost) string {
	if post.Sub != nil && *post.Sub != "" {
		return string(post.Source) + ":" + *post.Sub
	}
	return string(post.Source)
}

// interweavePosts groups posts by (source, sub), orders each group by upvotes
// descending with null upvotes sorting last, then round-robins across the
// groups: every group contributes its i-th post in round i, exhausted groups
// simply drop out of later rounds. Group visiting order is fixed by first
// appearance in the input.
func interweavePosts(posts []*model.StoredPost) []*model.StoredPost {
	groups := map[string][]*model.StoredPost{}
	groupOrder := []string{}
	for _, post := range posts {
		if !post.Source.IsValid() {
			continue
		}
		key := groupKey(post)
		if !utils.ContainsString(groupOrder, key) {
			groupOrder = append(groupOrder, key)
		}
		groups[key] = append(groups[key], post)
	}

	maxGroupLen := 0
	for _, key := range groupOrder {
		group := groups[key]
		// Stable so that posts without upvotes keep their relative order at
		// the tail.
		sort.SliceStable(group, func(i, j int) bool {
			a, b := group[i].Upvotes, group[j].Upvotes
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return *a > *b
		})
		if len(group) > maxGroupLen {
			maxGroupLen = len(group)
		}
	}

	result := []*model.StoredPost{}
	for round := 0; round < maxGroupLen; round++ {
		for _, key := range groupOrder {
			if round < len(groups[key]) {
				result = append(result, groups[key][round])
			}
		}
	}
	return result
}
