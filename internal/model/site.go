package model

import (
	"encoding/json"
	"time"
)

// Site is a physical facility: a building, campus, or data-center cage.
// The count_* fields are computed from dependent objects and are read-only.
type Site struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	Region          *NestedRef      `json:"region"`
	RegionID        *int64          `json:"-"`
	Tenant          *NestedRef      `json:"tenant"`
	TenantID        *int64          `json:"-"`
	Facility        string          `json:"facility"`
	ASN             *int64          `json:"asn"`
	PhysicalAddress string          `json:"physical_address"`
	ShippingAddress string          `json:"shipping_address"`
	ContactName     string          `json:"contact_name"`
	ContactPhone    string          `json:"contact_phone"`
	ContactEmail    string          `json:"contact_email"`
	Comments        string          `json:"comments"`
	CustomFields    json.RawMessage `json:"custom_fields"`
	CountPrefixes   int             `json:"count_prefixes"`
	CountVLANs      int             `json:"count_vlans"`
	CountRacks      int             `json:"count_racks"`
	CountDevices    int             `json:"count_devices"`
	CountCircuits   int             `json:"count_circuits"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
