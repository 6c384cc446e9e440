package utils

import "net/http"

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type PaginatedResult struct {
	Items      any   `json:"items"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// GetPagination extracts page/limit query params with sane bounds.
func GetPagination(r *http.Request) Pagination {
	page := ParseInt(r.URL.Query().Get("page"), 1)
	limit := ParseInt(r.URL.Query().Get("limit"), 10)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	return Pagination{Page: page, Limit: limit}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

func NewPaginatedResult(items any, p Pagination, totalItems int64) PaginatedResult {
	totalPages := int(totalItems) / p.Limit
	if int(totalItems)%p.Limit != 0 {
		totalPages++
	}
	return PaginatedResult{
		Items:      items,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}
