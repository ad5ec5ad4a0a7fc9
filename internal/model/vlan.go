package model

import (
	"encoding/json"
	"time"
)

// VLAN is an 802.1Q VLAN, optionally scoped to a site. VID is 1..4094.
type VLAN struct {
	ID           int64           `json:"id"`
	Site         *NestedRef      `json:"site"`
	SiteID       *int64          `json:"-"`
	VID          int             `json:"vid"`
	Name         string          `json:"name"`
	Tenant       *NestedRef      `json:"tenant"`
	TenantID     *int64          `json:"-"`
	Status       string          `json:"status"`
	Description  string          `json:"description"`
	CustomFields json.RawMessage `json:"custom_fields"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
