package request

import (
	"fmt"
	"net/http"
	"strconv"
)

// ListParams holds pagination and search parameters shared by all list
// endpoints. Resource-specific filters are parsed by each handler.
type ListParams struct {
	Limit  int
	Offset int
	Search string
}

// ParseListParams extracts shared list parameters from the query string.
func ParseListParams(r *http.Request) ListParams {
	pg := ParsePagination(r)
	return ListParams{
		Limit:  pg.Limit,
		Offset: pg.Offset,
		Search: r.URL.Query().Get("q"),
	}
}

// OptionalIDParam parses an optional numeric query parameter, returning
// nil when absent.
func OptionalIDParam(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	return &id, nil
}

// OptionalIntParam parses an optional integer query parameter.
func OptionalIntParam(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	return &v, nil
}
