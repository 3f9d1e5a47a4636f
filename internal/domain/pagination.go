package domain

// Page size bounds for list endpoints.
const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// PageRequest selects one page of a list. The zero value requests the whole list.
type PageRequest struct {
	Page  int
	Limit int
}

// NewPageRequest builds a PageRequest from optional page and limit values.
// Missing values take defaults; limit is capped at MaxPageSize.
func NewPageRequest(page, limit *int) (PageRequest, error) {
	if page == nil && limit == nil {
		return PageRequest{}, nil
	}
	req := PageRequest{Page: 1, Limit: DefaultPageSize}
	if page != nil {
		if *page < 1 {
			return PageRequest{}, ErrInvalidPage
		}
		req.Page = *page
	}
	if limit != nil {
		if *limit < 1 {
			return PageRequest{}, ErrInvalidPage
		}
		req.Limit = min(*limit, MaxPageSize)
	}
	return req, nil
}

// Enabled reports whether pagination was requested.
func (p PageRequest) Enabled() bool {
	return p.Limit > 0
}

// Offset is the number of rows skipped before the page.
func (p PageRequest) Offset() int {
	if !p.Enabled() || p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Page is one page of a list plus the counts a client needs to navigate.
type Page[T any] struct {
	Items       []T  `json:"items"`
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	HasNextPage bool `json:"hasNextPage"`
}

// NewPage assembles a Page for req. When req is not Enabled the page holds the
// whole list.
func NewPage[T any](items []T, req PageRequest, total int) *Page[T] {
	if items == nil {
		items = []T{}
	}
	if !req.Enabled() {
		return &Page[T]{
			Items:       items,
			CurrentPage: 1,
			TotalPages:  1,
			TotalItems:  len(items),
		}
	}
	totalPages := (total + req.Limit - 1) / req.Limit
	return &Page[T]{
		Items:       items,
		CurrentPage: req.Page,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasNextPage: req.Page < totalPages,
	}
}
