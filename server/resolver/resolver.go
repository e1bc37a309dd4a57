package resolver

import (
	"github.com/Luismorlan/newsagg/model"
	"gorm.io/gorm"
)

// RootResolver serves as dependency injection for the query surface, add any
// dependencies you require here.
type RootResolver struct {
	DB *gorm.DB
}

func NewRootResolver(db *gorm.DB) *RootResolver {
	return &RootResolver{DB: db}
}

// DetailedPostResponse bundles one primary post with a best-effort batch of
// caller-picked surrounding posts.
type DetailedPostResponse struct {
	Post             *model.PostView
	SurroundingPosts []*model.PostView
}
