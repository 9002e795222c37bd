package articles

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/newsdeck/articles-api/internal/domain"
	"github.com/newsdeck/articles-api/internal/domain/article"
	"github.com/newsdeck/articles-api/internal/domain/search"
	"github.com/newsdeck/articles-api/internal/engine"
)

// --- Mocks ---

type mockEngine struct {
	resp *engine.Response
	err  error

	gotIndex string
	gotBody  any
	calls    int
}

func (m *mockEngine) Search(_ context.Context, index string, body any) (*engine.Response, error) {
	m.calls++
	m.gotIndex = index
	m.gotBody = body
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func mustQuery(t *testing.T, size, page int, requested []string) search.Query {
	t.Helper()
	fields, err := article.Resolve(requested)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	q, err := search.New(size, page, fields)
	if err != nil {
		t.Fatalf("new query: %v", err)
	}
	return q
}

// --- Tests ---

func TestSearch_NilEngine_NotConfigured(t *testing.T) {
	repo := New(nil, "articles")

	_, _, err := repo.Search(context.Background(), mustQuery(t, 50, 1, nil))
	if !errors.Is(err, domain.ErrEngineNotConfigured) {
		t.Fatalf("expected ErrEngineNotConfigured, got %v", err)
	}
}

func TestSearch_BuildsEngineBody(t *testing.T) {
	eng := &mockEngine{resp: &engine.Response{}}
	repo := New(eng, "articles")

	_, _, err := repo.Search(context.Background(), mustQuery(t, 2, 3, []string{"title", "authors"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if eng.gotIndex != "articles" {
		t.Errorf("index = %q, want %q", eng.gotIndex, "articles")
	}

	body, ok := eng.gotBody.(map[string]any)
	if !ok {
		t.Fatalf("expected map body, got %T", eng.gotBody)
	}

	if body["size"] != 2 {
		t.Errorf("size = %v, want 2", body["size"])
	}
	if body["from"] != 4 {
		t.Errorf("from = %v, want 4", body["from"])
	}

	source, ok := body["_source"].([]string)
	if !ok || len(source) != 2 || source[0] != "title" || source[1] != "meta_author" {
		t.Errorf("unexpected _source: %v", body["_source"])
	}

	boolQuery := body["query"].(map[string]any)["bool"].(map[string]any)
	filters := boolQuery["filter"].([]map[string]any)
	if len(filters) != 1 {
		t.Fatalf("expected 1 filter clause, got %d", len(filters))
	}
	term := filters[0]["term"].(map[string]string)
	if term["meta_author.enum"] != domain.ContentOwner {
		t.Errorf("term filter = %v, want owner match", term)
	}

	sorts := body["sort"].([]map[string]any)
	if len(sorts) != 1 {
		t.Fatalf("expected 1 sort clause, got %d", len(sorts))
	}
	order := sorts[0]["meta_published_time"].(map[string]string)
	if order["order"] != "desc" {
		t.Errorf("sort order = %q, want desc", order["order"])
	}
}

func TestSearch_ParsesHitsAndTotal(t *testing.T) {
	eng := &mockEngine{resp: &engine.Response{
		Total: 3,
		Hits: []engine.Hit{
			{ID: "1", Source: json.RawMessage(`{"title":"A","meta_author":"Jeffrey Rengifo"}`)},
			{ID: "2", Source: json.RawMessage(`{"title":"B","meta_author":null}`)},
			{ID: "3", Source: json.RawMessage(``)},
		},
	}}
	repo := New(eng, "articles")

	hits, total, err := repo.Search(context.Background(), mustQuery(t, 2, 1, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(hits) != 3 {
		t.Fatalf("expected 3 hits, got %d", len(hits))
	}
	if hits[0]["title"] != "A" || hits[0]["meta_author"] != "Jeffrey Rengifo" {
		t.Errorf("unexpected first hit: %v", hits[0])
	}
	if hits[1]["meta_author"] != "" {
		t.Errorf("null author should decode to empty string, got %q", hits[1]["meta_author"])
	}
	if len(hits[2]) != 0 {
		t.Errorf("empty source should yield empty hit, got %v", hits[2])
	}
}

func TestSearch_EngineErrorWrapped(t *testing.T) {
	cause := errors.New("boom")
	repo := New(&mockEngine{err: cause}, "articles")

	_, _, err := repo.Search(context.Background(), mustQuery(t, 50, 1, nil))
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

func TestSearch_MalformedSource(t *testing.T) {
	eng := &mockEngine{resp: &engine.Response{
		Total: 1,
		Hits:  []engine.Hit{{ID: "1", Source: json.RawMessage(`{"title":42}`)}},
	}}
	repo := New(eng, "articles")

	_, _, err := repo.Search(context.Background(), mustQuery(t, 50, 1, nil))
	if err == nil {
		t.Fatal("expected error for malformed source")
	}
}
