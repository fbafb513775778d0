package port

import (
	"context"

	"finassist/internal/domain"
)

// WebSearcher issues a domain-filtered web search. Transport failures
// yield an empty response rather than an error so callers can proceed
// without web context.
type WebSearcher interface {
	Search(ctx context.Context, query string, maxResults int) domain.SearchResponse
}
