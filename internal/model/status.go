package model

// Device status values.
const (
	DeviceStatusActive    = "active"
	DeviceStatusOffline   = "offline"
	DeviceStatusPlanned   = "planned"
	DeviceStatusStaged    = "staged"
	DeviceStatusFailed    = "failed"
	DeviceStatusInventory = "inventory"
)

// Prefix status values.
const (
	PrefixStatusContainer  = "container"
	PrefixStatusActive     = "active"
	PrefixStatusReserved   = "reserved"
	PrefixStatusDeprecated = "deprecated"
)

// VLAN status values.
const (
	VLANStatusActive     = "active"
	VLANStatusReserved   = "reserved"
	VLANStatusDeprecated = "deprecated"
)

// Rack face a device is mounted on.
const (
	DeviceFaceFront = "front"
	DeviceFaceRear  = "rear"
)

// Circuit termination sides.
const (
	TermSideA = "A"
	TermSideZ = "Z"
)

func ValidDeviceStatus(s string) bool {
	switch s {
	case DeviceStatusActive, DeviceStatusOffline, DeviceStatusPlanned,
		DeviceStatusStaged, DeviceStatusFailed, DeviceStatusInventory:
		return true
	}
	return false
}

func ValidPrefixStatus(s string) bool {
	switch s {
	case PrefixStatusContainer, PrefixStatusActive, PrefixStatusReserved, PrefixStatusDeprecated:
		return true
	}
	return false
}

func ValidVLANStatus(s string) bool {
	switch s {
	case VLANStatusActive, VLANStatusReserved, VLANStatusDeprecated:
		return true
	}
	return false
}
