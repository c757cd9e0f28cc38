package types

import "time"

// Collection statuses. Trip collections move through PENDING, COLLECTED and
// DELIVERED; manual production entries (TripID empty) are recorded as
// COMPLETED.
const (
	CollectionPending   = "PENDING"
	CollectionCollected = "COLLECTED"
	CollectionDelivered = "DELIVERED"
	CollectionCompleted = "COMPLETED"
)

var validCollectionStatuses = map[string]bool{
	CollectionPending:   true,
	CollectionCollected: true,
	CollectionDelivered: true,
	CollectionCompleted: true,
}

// ValidCollectionStatus reports whether status is a recognized collection status.
func ValidCollectionStatus(status string) bool {
	return validCollectionStatuses[status]
}

// Collection is one weighed FFB pickup. TripID is empty for manual
// production entries not tied to a trip; Weight is in tons.
type Collection struct {
	ID        string    `json:"id"`
	TripID    string    `json:"tripId,omitempty"`
	MillID    string    `json:"millId"`
	Timestamp time.Time `json:"timestamp"`
	Weight    float64   `json:"weight"`
	Status    string    `json:"status"`
	UserID    string    `json:"userId"`
}

// CollectionUpdate describes a partial update. Nil fields are left untouched.
type CollectionUpdate struct {
	TripID    *string
	MillID    *string
	Timestamp *time.Time
	Weight    *float64
	Status    *string
}

// Empty reports whether the update touches no fields.
func (u CollectionUpdate) Empty() bool {
	return u.TripID == nil && u.MillID == nil && u.Timestamp == nil &&
		u.Weight == nil && u.Status == nil
}
