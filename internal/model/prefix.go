package model

import (
	"encoding/json"
	"time"
)

// Prefix is an IPv4 or IPv6 network, optionally assigned to a site and VLAN.
type Prefix struct {
	ID           int64           `json:"id"`
	Prefix       string          `json:"prefix"`
	Site         *NestedRef      `json:"site"`
	SiteID       *int64          `json:"-"`
	VLAN         *NestedRef      `json:"vlan"`
	VLANID       *int64          `json:"-"`
	Tenant       *NestedRef      `json:"tenant"`
	TenantID     *int64          `json:"-"`
	Status       string          `json:"status"`
	IsPool       bool            `json:"is_pool"`
	Description  string          `json:"description"`
	CustomFields json.RawMessage `json:"custom_fields"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
