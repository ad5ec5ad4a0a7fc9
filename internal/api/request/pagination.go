package request

import (
	"net/http"
	"strconv"
)

// Pagination holds parsed limit/offset parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const (
	DefaultLimit = 50
	MaxLimit     = 1000
)

// ParsePagination extracts limit and offset from query parameters.
func ParsePagination(r *http.Request) Pagination {
	p := Pagination{Limit: DefaultLimit}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			p.Limit = limit
		}
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset > 0 {
			p.Offset = offset
		}
	}

	return p
}
