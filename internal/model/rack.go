package model

import (
	"encoding/json"
	"time"
)

// RackRole classifies racks by function.
type RackRole struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Rack is an equipment rack within a site. Name is unique per site.
type Rack struct {
	ID           int64           `json:"id"`
	Site         *NestedRef      `json:"site"`
	SiteID       int64           `json:"-"`
	Name         string          `json:"name"`
	FacilityID   string          `json:"facility_id"`
	Tenant       *NestedRef      `json:"tenant"`
	TenantID     *int64          `json:"-"`
	Role         *NestedRef      `json:"role"`
	RoleID       *int64          `json:"-"`
	Width        int             `json:"width"`
	UHeight      int             `json:"u_height"`
	Comments     string          `json:"comments"`
	CustomFields json.RawMessage `json:"custom_fields"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
