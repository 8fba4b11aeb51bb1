package helpers

import (
	"net/http"
	"strconv"

	"neargo/internal/domain"
)

// Pagination query parameter defaults and limits. Pages are 0-based.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParsePagination reads page and size from the request query string, clamps
// them to valid ranges, and returns domain.PaginationParams. Invalid or
// missing values fall back to defaults.
func ParsePagination(r *http.Request) domain.PaginationParams {
	page := 0
	if s := r.URL.Query().Get("page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			page = v
		}
	}
	size := DefaultPageSize
	if s := r.URL.Query().Get("size"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			size = v
			if size > MaxPageSize {
				size = MaxPageSize
			}
		}
	}
	return domain.PaginationParams{Page: page, Size: size}
}
