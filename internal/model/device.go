package model

import (
	"encoding/json"
	"time"
)

// Manufacturer is a hardware vendor.
type Manufacturer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeviceType is a hardware model. Model is unique per manufacturer.
type DeviceType struct {
	ID             int64           `json:"id"`
	Manufacturer   *NestedRef      `json:"manufacturer"`
	ManufacturerID int64           `json:"-"`
	Model          string          `json:"model"`
	Slug           string          `json:"slug"`
	PartNumber     string          `json:"part_number"`
	UHeight        int             `json:"u_height"`
	IsFullDepth    bool            `json:"is_full_depth"`
	Comments       string          `json:"comments"`
	CustomFields   json.RawMessage `json:"custom_fields"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// DeviceRole classifies devices by function.
type DeviceRole struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Device is a piece of hardware installed at a site, optionally mounted
// in a rack at a given position and face.
type Device struct {
	ID           int64           `json:"id"`
	Name         *string         `json:"name"`
	DeviceType   *NestedRef      `json:"device_type"`
	DeviceTypeID int64           `json:"-"`
	DeviceRole   *NestedRef      `json:"device_role"`
	DeviceRoleID int64           `json:"-"`
	Tenant       *NestedRef      `json:"tenant"`
	TenantID     *int64          `json:"-"`
	Serial       string          `json:"serial"`
	AssetTag     *string         `json:"asset_tag"`
	Site         *NestedRef      `json:"site"`
	SiteID       int64           `json:"-"`
	Rack         *NestedRef      `json:"rack"`
	RackID       *int64          `json:"-"`
	Position     *int            `json:"position"`
	Face         *string         `json:"face"`
	Status       string          `json:"status"`
	Comments     string          `json:"comments"`
	CustomFields json.RawMessage `json:"custom_fields"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
