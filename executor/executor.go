package executor

import (
	"context"

	"esmcp/model"
)

// SearchOpts carries the listing modifiers accepted by a search call.
// MaxResults is clamped to the configured cap before reaching es.exe.
type SearchOpts struct {
	MaxResults     int
	Sort           string
	MatchCase      bool
	MatchWholeWord bool
	MatchRegex     bool
	MatchPath      bool
	Offset         int
}

type Executor interface {
	Search(ctx context.Context, query string, opts SearchOpts) ([]model.SearchResult, error)
	Count(ctx context.Context, query string) (int64, error)
	TotalSize(ctx context.Context, query string) (int64, error)
	Version(ctx context.Context) (string, error)
	HealthCheck(ctx context.Context) *model.HealthStatus
}
