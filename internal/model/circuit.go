package model

import (
	"encoding/json"
	"time"
)

// Provider is a transit or connectivity provider.
type Provider struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	ASN          *int64          `json:"asn"`
	Account      string          `json:"account"`
	PortalURL    string          `json:"portal_url"`
	NOCContact   string          `json:"noc_contact"`
	AdminContact string          `json:"admin_contact"`
	Comments     string          `json:"comments"`
	CustomFields json.RawMessage `json:"custom_fields"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CircuitType classifies circuits (e.g. internet transit, dark fiber).
type CircuitType struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Circuit is a physical connectivity service. CID is unique per provider.
type Circuit struct {
	ID           int64           `json:"id"`
	CID          string          `json:"cid"`
	Provider     *NestedRef      `json:"provider"`
	ProviderID   int64           `json:"-"`
	Type         *NestedRef      `json:"type"`
	TypeID       int64           `json:"-"`
	Tenant       *NestedRef      `json:"tenant"`
	TenantID     *int64          `json:"-"`
	InstallDate  *time.Time      `json:"install_date"`
	CommitRate   *int            `json:"commit_rate"`
	Description  string          `json:"description"`
	Comments     string          `json:"comments"`
	CustomFields json.RawMessage `json:"custom_fields"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CircuitTermination anchors one side (A or Z) of a circuit at a site.
type CircuitTermination struct {
	ID            int64      `json:"id"`
	Circuit       *NestedRef `json:"circuit"`
	CircuitID     int64      `json:"-"`
	TermSide      string     `json:"term_side"`
	Site          *NestedRef `json:"site"`
	SiteID        int64      `json:"-"`
	PortSpeed     int        `json:"port_speed"`
	UpstreamSpeed *int       `json:"upstream_speed"`
	XConnectID    string     `json:"xconnect_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
