package article

// Page is one page of shaped articles with pagination metadata. It
// marshals directly as the /articles response body.
type Page struct {
	Articles   []Article `json:"articles"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	Size       int       `json:"size"`
	TotalPages int       `json:"total_pages"`
}

// NewPage assembles a page. TotalPages is the ceiling of total/size;
// a zero total yields zero pages.
func NewPage(articles []Article, total, page, size int) Page {
	if articles == nil {
		articles = []Article{}
	}
	return Page{
		Articles:   articles,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: (total + size - 1) / size,
	}
}
