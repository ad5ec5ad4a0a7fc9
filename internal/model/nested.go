package model

// NestedRef is a brief reference to a related object, embedded in API
// representations in place of a bare foreign key.
type NestedRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}
