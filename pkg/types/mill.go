package types

// GeoLocation is a WGS84 coordinate pair.
type GeoLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Mill is a palm-oil mill that trips collect from. AvgDailyProduction is in
// tons per day.
type Mill struct {
	ID                 string      `json:"id"`
	Name               string      `json:"name"`
	Location           GeoLocation `json:"location"`
	ContactPerson      string      `json:"contactPerson"`
	PhoneNumber        string      `json:"phoneNumber"`
	AvgDailyProduction float64     `json:"avgDailyProduction"`
	UserID             string      `json:"userId"`
}

// MillUpdate describes a partial update. Nil fields are left untouched.
type MillUpdate struct {
	Name               *string
	Location           *GeoLocation
	ContactPerson      *string
	PhoneNumber        *string
	AvgDailyProduction *float64
}

// Empty reports whether the update touches no fields.
func (u MillUpdate) Empty() bool {
	return u.Name == nil && u.Location == nil && u.ContactPerson == nil &&
		u.PhoneNumber == nil && u.AvgDailyProduction == nil
}
