package article

import "github.com/newsdeck/articles-api/internal/domain"

// Article is one shaped output record, keyed by public field name.
// Every requested field is present: absent stored values map to the
// empty string, and to an empty list for authors, never to a missing key.
type Article map[string]any

// Shape projects one engine hit into an Article using the resolved
// field pairs. The stored schema holds at most one author string even
// though the public shape is a list.
func Shape(hit domain.Hit, fields []Field) Article {
	a := make(Article, len(fields))
	for _, f := range fields {
		value := hit[f.Stored]
		if f.Public == publicAuthors {
			if value == "" {
				a[f.Public] = []string{}
			} else {
				a[f.Public] = []string{value}
			}
			continue
		}
		a[f.Public] = value
	}
	return a
}

// ShapeAll projects a hit sequence, preserving engine order.
func ShapeAll(hits []domain.Hit, fields []Field) []Article {
	articles := make([]Article, 0, len(hits))
	for _, hit := range hits {
		articles = append(articles, Shape(hit, fields))
	}
	return articles
}
