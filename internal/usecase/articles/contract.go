package articles

import (
	"context"

	"github.com/newsdeck/articles-api/internal/domain"
	"github.com/newsdeck/articles-api/internal/domain/search"
)

// Repository defines the engine-backed storage contract.
type Repository interface {
	Search(ctx context.Context, q search.Query) ([]domain.Hit, int, error)
}
