package response

import (
	"encoding/json"
	"net/http"
	"strconv"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}

// ListResponse wraps list results with count and page links.
type ListResponse struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// WriteList writes a paginated list response. Next and previous are
// absolute URLs derived from the request, null at the edges.
func WriteList(w http.ResponseWriter, r *http.Request, results any, count, limit, offset int) {
	resp := ListResponse{
		Count:   count,
		Results: results,
	}

	if offset+limit < count {
		u := pageURL(r, limit, offset+limit)
		resp.Next = &u
	}
	if offset > 0 {
		prev := offset - limit
		if prev < 0 {
			prev = 0
		}
		u := pageURL(r, limit, prev)
		resp.Previous = &u
	}

	WriteJSON(w, http.StatusOK, resp)
}

func pageURL(r *http.Request, limit, offset int) string {
	u := *r.URL
	q := u.Query()
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	u.RawQuery = q.Encode()

	u.Host = r.Host
	u.Scheme = "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		u.Scheme = "https"
	}
	return u.String()
}
