package types

import "time"

// Trip statuses.
const (
	TripScheduled  = "SCHEDULED"
	TripInProgress = "IN_PROGRESS"
	TripCompleted  = "COMPLETED"
	TripCancelled  = "CANCELLED"
)

var validTripStatuses = map[string]bool{
	TripScheduled:  true,
	TripInProgress: true,
	TripCompleted:  true,
	TripCancelled:  true,
}

// ValidTripStatus reports whether status is a recognized trip status.
func ValidTripStatus(status string) bool {
	return validTripStatuses[status]
}

// Trip is a scheduled collection run: one vehicle and driver visiting one or
// more mills. Mills and Collections are reconstituted on read and are empty
// slices, never nil, when the trip has none. EstimatedDuration is in minutes.
type Trip struct {
	ID                string       `json:"id"`
	Vehicle           Vehicle      `json:"vehicle"`
	Driver            Driver       `json:"driver"`
	Mills             []Mill       `json:"mills"`
	ScheduledDate     time.Time    `json:"scheduledDate"`
	Status            string       `json:"status"`
	Collections       []Collection `json:"collections"`
	EstimatedDuration int          `json:"estimatedDuration"`
	UserID            string       `json:"userId"`
}

// TripUpdate describes a partial update. Nil fields are left untouched.
// Setting Status also flips the trip's vehicle: IN_USE when the new status
// is IN_PROGRESS, AVAILABLE otherwise.
type TripUpdate struct {
	VehicleID         *string
	DriverID          *string
	ScheduledDate     *time.Time
	Status            *string
	EstimatedDuration *int
	UserID            *string
}

// Empty reports whether the update touches no fields.
func (u TripUpdate) Empty() bool {
	return u.VehicleID == nil && u.DriverID == nil && u.ScheduledDate == nil &&
		u.Status == nil && u.EstimatedDuration == nil && u.UserID == nil
}
