package helpers

import (
	"net/http"
	"net/url"
	"strconv"

	"campusevents/internal/domain"
)

// ParsePagination reads page and page_size from the query string.
// Missing or unparsable values fall back to the domain defaults.
func ParsePagination(r *http.Request) domain.PaginationParams {
	q := r.URL.Query()
	return domain.NewPaginationParams(queryInt(q, "page"), queryInt(q, "page_size"))
}

func queryInt(q url.Values, key string) int {
	v, err := strconv.Atoi(q.Get(key))
	if err != nil {
		return 0
	}
	return v
}

// PaginationMeta describes the page returned by a list endpoint.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

func NewPaginationMeta(params domain.PaginationParams, total int) PaginationMeta {
	pages := params.TotalPages(total)
	return PaginationMeta{
		Page:       params.Page,
		PageSize:   params.PageSize,
		Total:      total,
		TotalPages: pages,
		HasNext:    params.Page < pages,
	}
}
