package types

// Vehicle types.
const (
	VehicleTruck  = "TRUCK"
	VehicleVan    = "VAN"
	VehiclePickup = "PICKUP"
)

// Vehicle statuses.
const (
	VehicleAvailable   = "AVAILABLE"
	VehicleInUse       = "IN_USE"
	VehicleMaintenance = "MAINTENANCE"
	VehicleUnavailable = "UNAVAILABLE"
)

var validVehicleTypes = map[string]bool{
	VehicleTruck:  true,
	VehicleVan:    true,
	VehiclePickup: true,
}

var validVehicleStatuses = map[string]bool{
	VehicleAvailable:   true,
	VehicleInUse:       true,
	VehicleMaintenance: true,
	VehicleUnavailable: true,
}

// ValidVehicleType reports whether t is a recognized vehicle type.
func ValidVehicleType(t string) bool {
	return validVehicleTypes[t]
}

// ValidVehicleStatus reports whether status is a recognized vehicle status.
func ValidVehicleStatus(status string) bool {
	return validVehicleStatuses[status]
}

// Vehicle is a transport unit. Each vehicle owns exactly one driver
// reference; Capacity is in tons. OwnerName carries the denormalized
// display name of the owning account on list reads.
type Vehicle struct {
	ID          string  `json:"id"`
	PlateNumber string  `json:"plateNumber"`
	Type        string  `json:"type"`
	Capacity    float64 `json:"capacity"`
	Driver      Driver  `json:"driver"`
	Status      string  `json:"status"`
	UserID      string  `json:"userId"`
	OwnerName   string  `json:"users,omitempty"`
}

// VehicleUpdate describes a partial update. Nil fields are left untouched.
type VehicleUpdate struct {
	PlateNumber *string
	Type        *string
	Capacity    *float64
	DriverID    *string
	Status      *string
}

// Empty reports whether the update touches no fields.
func (u VehicleUpdate) Empty() bool {
	return u.PlateNumber == nil && u.Type == nil && u.Capacity == nil &&
		u.DriverID == nil && u.Status == nil
}
