package domain

// Page size limits for paginated list operations.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginationParams selects one page of a list. Page is 1-based.
type PaginationParams struct {
	Page     int
	PageSize int
}

// NewPaginationParams clamps page and size into range. Non-positive values take the defaults.
func NewPaginationParams(page, size int) PaginationParams {
	if page < 1 {
		page = 1
	}
	switch {
	case size < 1:
		size = DefaultPageSize
	case size > MaxPageSize:
		size = MaxPageSize
	}
	return PaginationParams{Page: page, PageSize: size}
}

// Offset is the number of rows preceding the page.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// TotalPages is the number of pages needed for total rows.
func (p PaginationParams) TotalPages(total int) int {
	if p.PageSize <= 0 {
		return 0
	}
	return (total + p.PageSize - 1) / p.PageSize
}
