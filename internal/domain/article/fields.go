// Package article owns the public field vocabulary of the API and the
// projection of engine hits into client-facing article records.
package article

import (
	"fmt"

	"github.com/newsdeck/articles-api/internal/domain"
)

// Field pairs a public API field name with the stored document field
// it reads from.
type Field struct {
	Public string
	Stored string
}

// publicAuthors is the one field whose scalar stored value is projected
// into a list in the output.
const publicAuthors = "authors"

// Stored fields referenced by the query builder.
const (
	// StoredPublishedTime orders results, newest first.
	StoredPublishedTime = "meta_published_time"
	// StoredAuthorKeyword is the keyword sub-field the owner filter
	// matches against.
	StoredAuthorKeyword = "meta_author.enum"
)

// mapping is the canonical field vocabulary. Declaration order is the
// canonical order; the table is fixed at compile time and never mutated.
var mapping = []Field{
	{Public: "title", Stored: "title"},
	{Public: "description", Stored: "meta_description"},
	{Public: "coverImage", Stored: "meta_img"},
	{Public: "link", Stored: "url"},
	{Public: "slug", Stored: "url_path_dir3"},
	{Public: "publishedAt", Stored: StoredPublishedTime},
	{Public: "authors", Stored: "meta_author"},
	{Public: "body", Stored: "article_content"},
}

// Fields returns the full vocabulary in canonical order.
func Fields() []Field {
	out := make([]Field, len(mapping))
	copy(out, mapping)
	return out
}

// PublicNames returns the valid public field names in canonical order.
func PublicNames() []string {
	names := make([]string, len(mapping))
	for i, f := range mapping {
		names[i] = f.Public
	}
	return names
}

// Resolve maps requested public names to field pairs, preserving request
// order. A nil or empty request resolves to the full vocabulary. Unknown
// names fail with *domain.InvalidFieldsError listing every unknown name.
func Resolve(requested []string) ([]Field, error) {
	if len(requested) == 0 {
		return Fields(), nil
	}

	byPublic := make(map[string]Field, len(mapping))
	for _, f := range mapping {
		byPublic[f.Public] = f
	}

	fields := make([]Field, 0, len(requested))
	var unknown []string
	for _, name := range requested {
		f, ok := byPublic[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		fields = append(fields, f)
	}
	if len(unknown) > 0 {
		return nil, domain.NewInvalidFields(unknown, PublicNames())
	}
	return fields, nil
}

// ValidateMapping checks the table invariants: unique public names and
// non-empty stored names. Called from the composition root.
func ValidateMapping() error {
	seen := make(map[string]struct{}, len(mapping))
	for _, f := range mapping {
		if f.Public == "" {
			return fmt.Errorf("empty public field name (stored %q)", f.Stored)
		}
		if f.Stored == "" {
			return fmt.Errorf("field %q has no stored name", f.Public)
		}
		if _, dup := seen[f.Public]; dup {
			return fmt.Errorf("duplicate public field %q", f.Public)
		}
		seen[f.Public] = struct{}{}
	}
	return nil
}
