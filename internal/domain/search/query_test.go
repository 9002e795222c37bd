package search

import (
	"errors"
	"testing"

	"github.com/newsdeck/articles-api/internal/domain"
	"github.com/newsdeck/articles-api/internal/domain/article"
)

func allFields(t *testing.T) []article.Field {
	t.Helper()
	fields, err := article.Resolve(nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	return fields
}

func TestNew_ComputesOffset(t *testing.T) {
	tests := []struct {
		size, page, from int
	}{
		{50, 1, 0},
		{50, 2, 50},
		{2, 1, 0},
		{2, 3, 4},
		{100, 10, 900},
		{1, 1, 0},
	}

	for _, tc := range tests {
		q, err := New(tc.size, tc.page, allFields(t))
		if err != nil {
			t.Fatalf("unexpected error for size=%d page=%d: %v", tc.size, tc.page, err)
		}
		if q.From() != tc.from {
			t.Errorf("From() for size=%d page=%d = %d, want %d", tc.size, tc.page, q.From(), tc.from)
		}
	}
}

func TestNew_RejectsOutOfBoundsSize(t *testing.T) {
	for _, size := range []int{0, -1, 101} {
		_, err := New(size, 1, allFields(t))
		if !errors.Is(err, domain.ErrInvalidQuery) {
			t.Errorf("size=%d: expected ErrInvalidQuery, got %v", size, err)
		}
	}
}

func TestNew_RejectsInvalidPage(t *testing.T) {
	for _, page := range []int{0, -5} {
		_, err := New(50, page, allFields(t))
		if !errors.Is(err, domain.ErrInvalidQuery) {
			t.Errorf("page=%d: expected ErrInvalidQuery, got %v", page, err)
		}
	}
}

func TestNew_RejectsEmptyFields(t *testing.T) {
	_, err := New(50, 1, nil)
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestStoredFields(t *testing.T) {
	fields, err := article.Resolve([]string{"title", "authors"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	q, err := New(10, 1, fields)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := q.StoredFields()
	if len(stored) != 2 || stored[0] != "title" || stored[1] != "meta_author" {
		t.Errorf("unexpected stored fields: %v", stored)
	}
}
