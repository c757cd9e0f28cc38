package types

// Driver statuses.
const (
	DriverAvailable = "AVAILABLE"
	DriverOnTrip    = "ON_TRIP"
	DriverOffDuty   = "OFF_DUTY"
	DriverSick      = "SICK"
)

// validDriverStatuses is the set of recognized driver status values.
var validDriverStatuses = map[string]bool{
	DriverAvailable: true,
	DriverOnTrip:    true,
	DriverOffDuty:   true,
	DriverSick:      true,
}

// ValidDriverStatus reports whether status is a recognized driver status.
func ValidDriverStatus(status string) bool {
	return validDriverStatuses[status]
}

// Driver is a person licensed to operate a vehicle. UserID is the owning
// client account.
type Driver struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	LicenseNumber string `json:"licenseNumber"`
	PhoneNumber   string `json:"phoneNumber"`
	Status        string `json:"status"`
	UserID        string `json:"userId"`
}

// DriverUpdate describes a partial update. Nil fields are left untouched.
type DriverUpdate struct {
	Name          *string
	LicenseNumber *string
	PhoneNumber   *string
	Status        *string
	UserID        *string
}

// Empty reports whether the update touches no fields.
func (u DriverUpdate) Empty() bool {
	return u.Name == nil && u.LicenseNumber == nil && u.PhoneNumber == nil &&
		u.Status == nil && u.UserID == nil
}
