// Package search defines the validated, engine-bound query value object.
package search

import (
	"fmt"

	"github.com/newsdeck/articles-api/internal/domain"
	"github.com/newsdeck/articles-api/internal/domain/article"
)

// Pagination bounds.
const (
	MinSize = 1
	MaxSize = 100
	MinPage = 1
)

// Query is a validated paginated article query. It is built fresh per
// request and never persisted. The author filter is fixed to
// domain.ContentOwner and is not part of the constructor on purpose.
type Query struct {
	size   int
	page   int
	fields []article.Field
}

// New validates pagination parameters and binds the resolved fields.
func New(size, page int, fields []article.Field) (Query, error) {
	if size < MinSize || size > MaxSize {
		return Query{}, fmt.Errorf("%w: size must be between %d and %d", domain.ErrInvalidQuery, MinSize, MaxSize)
	}
	if page < MinPage {
		return Query{}, fmt.Errorf("%w: page must be at least %d", domain.ErrInvalidQuery, MinPage)
	}
	if len(fields) == 0 {
		return Query{}, fmt.Errorf("%w: at least one field is required", domain.ErrInvalidQuery)
	}
	return Query{size: size, page: page, fields: fields}, nil
}

// Size returns the requested page size.
func (q *Query) Size() int { return q.size }

// Page returns the requested page number.
func (q *Query) Page() int { return q.page }

// From returns the engine offset for the requested page.
func (q *Query) From() int { return (q.page - 1) * q.size }

// Fields returns the resolved field pairs in request order.
func (q *Query) Fields() []article.Field { return q.fields }

// StoredFields returns the stored field names to retrieve.
func (q *Query) StoredFields() []string {
	stored := make([]string, len(q.fields))
	for i, f := range q.fields {
		stored[i] = f.Stored
	}
	return stored
}
