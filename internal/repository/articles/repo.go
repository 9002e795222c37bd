// Package articles translates domain queries into the engine's request
// DSL and parses hits back into domain values.
package articles

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/newsdeck/articles-api/internal/domain"
	"github.com/newsdeck/articles-api/internal/domain/article"
	"github.com/newsdeck/articles-api/internal/domain/search"
	"github.com/newsdeck/articles-api/internal/engine"
)

// Engine is the consumer interface over the engine client (ISP).
type Engine interface {
	Search(ctx context.Context, index string, body any) (*engine.Response, error)
}

// Repo implements usecase/articles.Repository against the remote engine.
type Repo struct {
	engine Engine // nil when the service runs unconfigured
	index  string
}

// New creates an articles repository bound to one index. A nil engine is
// legal: every search then fails with domain.ErrEngineNotConfigured.
func New(e Engine, index string) *Repo {
	return &Repo{engine: e, index: index}
}

// Search runs the query and returns the matched hits plus the total
// match count across all pages.
func (r *Repo) Search(ctx context.Context, q search.Query) ([]domain.Hit, int, error) {
	if r.engine == nil {
		return nil, 0, domain.ErrEngineNotConfigured
	}

	resp, err := r.engine.Search(ctx, r.index, buildSearchBody(q))
	if err != nil {
		return nil, 0, fmt.Errorf("execute search: %w", err)
	}

	hits := make([]domain.Hit, 0, len(resp.Hits))
	for _, h := range resp.Hits {
		hit, err := parseSource(h.Source)
		if err != nil {
			return nil, 0, fmt.Errorf("parse hit %s: %w", h.ID, err)
		}
		hits = append(hits, hit)
	}

	return hits, resp.Total, nil
}

// buildSearchBody renders the engine request: paginated, restricted to
// the stored fields the client asked for, filtered to the content owner,
// newest first.
func buildSearchBody(q search.Query) map[string]any {
	return map[string]any{
		"size":    q.Size(),
		"from":    q.From(),
		"_source": q.StoredFields(),
		"query": map[string]any{
			"bool": map[string]any{
				"filter": []map[string]any{
					{"term": map[string]string{article.StoredAuthorKeyword: domain.ContentOwner}},
				},
			},
		},
		"sort": []map[string]any{
			{article.StoredPublishedTime: map[string]string{"order": "desc"}},
		},
	}
}

// parseSource decodes a hit's _source document. Stored values are
// strings; JSON null decodes to "".
func parseSource(raw json.RawMessage) (domain.Hit, error) {
	if len(raw) == 0 {
		return domain.Hit{}, nil
	}
	var hit domain.Hit
	if err := json.Unmarshal(raw, &hit); err != nil {
		return nil, fmt.Errorf("unmarshal source: %w", err)
	}
	return hit, nil
}
