// Package articles holds the core request-to-query translation and
// result shaping of the service.
package articles

import (
	"context"
	"fmt"

	"github.com/newsdeck/articles-api/internal/domain/article"
	"github.com/newsdeck/articles-api/internal/domain/search"
)

// Service translates validated pagination and field selection into an
// engine query and shapes the hits into the public representation.
// Stateless; safe for concurrent use.
type Service struct {
	repo Repository
}

// New creates an articles service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// List retrieves one page of articles. requested is the client-supplied
// public field list; nil or empty resolves to the full vocabulary.
// Unknown field names fail before the engine is called.
func (s *Service) List(ctx context.Context, size, page int, requested []string) (article.Page, error) {
	fields, err := article.Resolve(requested)
	if err != nil {
		return article.Page{}, err
	}

	q, err := search.New(size, page, fields)
	if err != nil {
		return article.Page{}, err
	}

	hits, total, err := s.repo.Search(ctx, q)
	if err != nil {
		return article.Page{}, fmt.Errorf("search articles: %w", err)
	}

	return article.NewPage(article.ShapeAll(hits, fields), total, page, size), nil
}
