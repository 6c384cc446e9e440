package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPagination(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 10},
		{"explicit values", "?page=3&limit=25", 3, 25},
		{"zero page falls back", "?page=0", 1, 10},
		{"negative limit falls back", "?limit=-5", 1, 10},
		{"limit is capped", "?limit=500", 1, 100},
		{"garbage falls back", "?page=abc&limit=xyz", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/rentals"+tt.query, nil)
			p := GetPagination(r)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
		})
	}
}

func TestPaginationOffset(t *testing.T) {
	assert.Equal(t, 0, Pagination{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, Pagination{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, 50, Pagination{Page: 2, Limit: 50}.Offset())
}

func TestNewPaginatedResult(t *testing.T) {
	items := []string{"a", "b", "c"}

	result := NewPaginatedResult(items, Pagination{Page: 1, Limit: 10}, 3)
	assert.Equal(t, int64(3), result.TotalItems)
	assert.Equal(t, 1, result.TotalPages)

	result = NewPaginatedResult(items, Pagination{Page: 2, Limit: 10}, 25)
	assert.Equal(t, 3, result.TotalPages)

	result = NewPaginatedResult(nil, Pagination{Page: 1, Limit: 10}, 0)
	assert.Equal(t, 0, result.TotalPages)
}
