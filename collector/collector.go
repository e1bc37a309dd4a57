package collector

import (
	"github.com/Luismorlan/newsagg/model"
)

// PostCollector is a source adapter: it fetches raw items from one upstream
// source, applies source-specific filtering and emits normalized Posts.
//
// A failing listing request is a hard failure for the whole invocation.
// Failures on individual items must be skipped, never abort the batch.
type PostCollector interface {
	// Source identifies the adapter family.
	Source() model.SourceEnum

	// Collect fetches up to limit qualifying posts.
	Collect(limit int) ([]model.Post, error)
}
