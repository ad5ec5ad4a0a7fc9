package model

import "time"

// Region groups sites geographically. Regions nest via Parent.
type Region struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	Parent    *NestedRef `json:"parent"`
	ParentID  *int64     `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
