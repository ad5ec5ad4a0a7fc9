package core

type Services struct {
	Region             *RegionService
	Site               *SiteService
	Tenant             *TenantService
	RackRole           *RackRoleService
	Rack               *RackService
	Manufacturer       *ManufacturerService
	DeviceType         *DeviceTypeService
	DeviceRole         *DeviceRoleService
	Device             *DeviceService
	Prefix             *PrefixService
	VLAN               *VLANService
	Provider           *ProviderService
	CircuitType        *CircuitTypeService
	Circuit            *CircuitService
	CircuitTermination *CircuitTerminationService
	Token              *TokenService
	AuditLog           *AuditLogService
	Search             *SearchService
}

func NewServices(db DB) *Services {
	return &Services{
		Region:             NewRegionService(db),
		Site:               NewSiteService(db),
		Tenant:             NewTenantService(db),
		RackRole:           NewRackRoleService(db),
		Rack:               NewRackService(db),
		Manufacturer:       NewManufacturerService(db),
		DeviceType:         NewDeviceTypeService(db),
		DeviceRole:         NewDeviceRoleService(db),
		Device:             NewDeviceService(db),
		Prefix:             NewPrefixService(db),
		VLAN:               NewVLANService(db),
		Provider:           NewProviderService(db),
		CircuitType:        NewCircuitTypeService(db),
		Circuit:            NewCircuitService(db),
		CircuitTermination: NewCircuitTerminationService(db),
		Token:              NewTokenService(db),
		AuditLog:           NewAuditLogService(db),
		Search:             NewSearchService(db),
	}
}
