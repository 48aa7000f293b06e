// Package pagination models page/limit parameters and the paginated
// response shape used by list endpoints.
package pagination

// Page describes the pagination block returned alongside a result page.
type Page struct {
	CurrentPage   int  `json:"currentPage"`
	TotalPages    int  `json:"totalPages"`
	TotalProducts int  `json:"totalProducts"`
	HasNext       bool `json:"hasNext"`
	HasPrev       bool `json:"hasPrev"`
}

// NewPage computes the pagination block for the given totals. limit must
// be positive; callers clamp before reaching here.
func NewPage(page, limit, total int) Page {
	totalPages := total / limit
	if total%limit > 0 {
		totalPages++
	}
	return Page{
		CurrentPage:   page,
		TotalPages:    totalPages,
		TotalProducts: total,
		HasNext:       page < totalPages,
		HasPrev:       page > 1,
	}
}

// Offset returns the row offset for the given page and limit.
func Offset(page, limit int) int {
	if page <= 1 {
		return 0
	}
	return (page - 1) * limit
}
