package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mgufindo/ffb-swt/pkg/types"
)

// TripStore implements trip CRUD. Trips are composite: the main row plus
// trip_mills associations and per-mill collection rows, written in one
// transaction and reconstituted on read.
type TripStore struct {
	db *sql.DB
}

// NewTripStore returns a TripStore bound to db.
func NewTripStore(db *sql.DB) *TripStore {
	return &TripStore{db: db}
}

const tripSelect = `
SELECT t.id, t.scheduledDate, t.status, t.estimatedDuration, t.userId,
       v.id, v.plateNumber, v.type, v.capacity, v.status, v.userId,
       d.id, d.name, d.licenseNumber, d.phoneNumber, d.status, d.userId`

const tripJoin = `
FROM trips t
JOIN vehicles v ON t.vehicleId = v.id
JOIN drivers d ON t.driverId = d.id`

// tripSearchPredicate matches the trip id and status, the vehicle plate, and
// the driver's name and phone. Shared by List and Count.
const tripSearchPredicate = `(t.id LIKE ? OR v.plateNumber LIKE ? OR d.name LIKE ?
    OR d.phoneNumber LIKE ? OR t.status LIKE ?)`

// List returns trips with nested vehicle, driver, mills and collections.
func (s *TripStore) List(limit, offset int, search, ownerID string) ([]types.Trip, error) {
	query := tripSelect + tripJoin + " WHERE 1=1"
	var args []any

	if search != "" {
		pattern := "%" + search + "%"
		query += " AND " + tripSearchPredicate
		args = append(args, pattern, pattern, pattern, pattern, pattern)
	}
	if ownerID != "" {
		query += " AND t.userId = ?"
		args = append(args, ownerID)
	}

	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing trips: %w", err)
	}

	trips := []types.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning trip: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating trips: %w", err)
	}
	rows.Close()

	for i := range trips {
		if err := s.hydrateTripChildren(&trips[i]); err != nil {
			return nil, err
		}
	}
	return trips, nil
}

// Count mirrors List's predicate and returns the row count.
func (s *TripStore) Count(search, ownerID string) (int, error) {
	query := "SELECT COUNT(*)" + tripJoin + " WHERE 1=1"
	var args []any

	if search != "" {
		pattern := "%" + search + "%"
		query += " AND " + tripSearchPredicate
		args = append(args, pattern, pattern, pattern, pattern, pattern)
	}
	if ownerID != "" {
		query += " AND t.userId = ?"
		args = append(args, ownerID)
	}

	var count int
	if err := s.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting trips: %w", err)
	}
	return count, nil
}

// GetByID returns the trip with all nested entities, and whether it exists.
func (s *TripStore) GetByID(id string) (types.Trip, bool, error) {
	rows, err := s.db.Query(tripSelect+tripJoin+" WHERE t.id = ?", id)
	if err != nil {
		return types.Trip{}, false, fmt.Errorf("getting trip %s: %w", id, err)
	}

	if !rows.Next() {
		err := rows.Err()
		rows.Close()
		if err != nil {
			return types.Trip{}, false, fmt.Errorf("getting trip %s: %w", id, err)
		}
		return types.Trip{}, false, nil
	}
	t, err := scanTrip(rows)
	rows.Close()
	if err != nil {
		return types.Trip{}, false, fmt.Errorf("scanning trip %s: %w", id, err)
	}

	if err := s.hydrateTripChildren(&t); err != nil {
		return types.Trip{}, false, err
	}
	return t, true, nil
}

// ByMill returns trips visiting the given mill, each carrying that single
// mill and the collections recorded for it on the trip.
func (s *TripStore) ByMill(millID string, limit, offset int) ([]types.Trip, error) {
	query := tripSelect + tripJoin + `
JOIN trip_mills tm ON tm.tripId = t.id
WHERE tm.millId = ? LIMIT ? OFFSET ?`

	rows, err := s.db.Query(query, millID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing trips for mill %s: %w", millID, err)
	}

	trips := []types.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning trip: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating trips: %w", err)
	}
	rows.Close()

	for i := range trips {
		mill, found, err := NewMillStore(s.db).GetByID(millID)
		if err != nil {
			return nil, err
		}
		if found {
			trips[i].Mills = []types.Mill{mill}
		}

		collections, err := s.loadCollections(
			"SELECT "+collectionColumns+" FROM collections WHERE tripId = ? AND millId = ? ORDER BY timestamp DESC",
			trips[i].ID, millID,
		)
		if err != nil {
			return nil, err
		}
		trips[i].Collections = collections
	}
	return trips, nil
}

// CountByMill returns the number of trips associated with the mill.
func (s *TripStore) CountByMill(millID string) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM trip_mills WHERE millId = ?", millID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting trips for mill %s: %w", millID, err)
	}
	return count, nil
}

// Create inserts the trip row, its mill associations, and its collection
// rows in one transaction, and returns the generated trip ID.
func (s *TripStore) Create(t types.Trip) (string, error) {
	if !types.ValidTripStatus(t.Status) {
		return "", types.ErrInvalidStatus
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	id := uuid.New().String()
	_, err = tx.Exec(
		"INSERT INTO trips (id, vehicleId, driverId, scheduledDate, status, estimatedDuration, userId) VALUES (?, ?, ?, ?, ?, ?, ?)",
		id, t.Vehicle.ID, t.Driver.ID, t.ScheduledDate.UTC().Format(time.RFC3339), t.Status, t.EstimatedDuration, t.UserID,
	)
	if err != nil {
		return "", fmt.Errorf("creating trip: %w", err)
	}

	for _, mill := range t.Mills {
		_, err := tx.Exec("INSERT INTO trip_mills (tripId, millId) VALUES (?, ?)", id, mill.ID)
		if err != nil {
			return "", fmt.Errorf("associating mill %s: %w", mill.ID, err)
		}
	}

	for _, c := range t.Collections {
		_, err := tx.Exec(
			"INSERT INTO collections (id, tripId, millId, timestamp, weight, status, userId) VALUES (?, ?, ?, ?, ?, ?, ?)",
			uuid.New().String(), id, c.MillID, c.Timestamp.UTC().Format(time.RFC3339), c.Weight, c.Status, c.UserID,
		)
		if err != nil {
			return "", fmt.Errorf("creating collection for mill %s: %w", c.MillID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing trip: %w", err)
	}
	return id, nil
}

// Update applies the non-nil fields and reports whether a row changed. A
// status change also flips the trip's vehicle: IN_USE when the trip goes
// IN_PROGRESS, AVAILABLE for any other status.
func (s *TripStore) Update(id string, u types.TripUpdate) (bool, error) {
	if u.Empty() {
		return false, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var fields []string
	var args []any

	if u.VehicleID != nil {
		fields = append(fields, "vehicleId = ?")
		args = append(args, *u.VehicleID)
	}
	if u.DriverID != nil {
		fields = append(fields, "driverId = ?")
		args = append(args, *u.DriverID)
	}
	if u.ScheduledDate != nil {
		fields = append(fields, "scheduledDate = ?")
		args = append(args, u.ScheduledDate.UTC().Format(time.RFC3339))
	}
	if u.Status != nil {
		if !types.ValidTripStatus(*u.Status) {
			return false, types.ErrInvalidStatus
		}
		fields = append(fields, "status = ?")
		args = append(args, *u.Status)
	}
	if u.EstimatedDuration != nil {
		fields = append(fields, "estimatedDuration = ?")
		args = append(args, *u.EstimatedDuration)
	}
	if u.UserID != nil {
		fields = append(fields, "userId = ?")
		args = append(args, *u.UserID)
	}

	if u.Status != nil {
		vehicleID := ""
		if u.VehicleID != nil {
			vehicleID = *u.VehicleID
		} else {
			err := tx.QueryRow("SELECT vehicleId FROM trips WHERE id = ?", id).Scan(&vehicleID)
			if err != nil && err != sql.ErrNoRows {
				return false, fmt.Errorf("reading trip vehicle: %w", err)
			}
		}
		if vehicleID != "" {
			vehicleStatus := types.VehicleAvailable
			if *u.Status == types.TripInProgress {
				vehicleStatus = types.VehicleInUse
			}
			_, err := tx.Exec("UPDATE vehicles SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
				vehicleStatus, vehicleID)
			if err != nil {
				return false, fmt.Errorf("updating vehicle status: %w", err)
			}
		}
	}

	fields = append(fields, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	res, err := tx.Exec("UPDATE trips SET "+strings.Join(fields, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return false, fmt.Errorf("updating trip %s: %w", id, err)
	}
	changed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading affected rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing trip update: %w", err)
	}
	return changed > 0, nil
}

// Delete removes the trip's collection and mill-association rows, then the
// trip itself, all in one transaction so the foreign keys hold throughout.
func (s *TripStore) Delete(id string) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM collections WHERE tripId = ?", id); err != nil {
		return false, fmt.Errorf("deleting trip collections: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM trip_mills WHERE tripId = ?", id); err != nil {
		return false, fmt.Errorf("deleting trip mill associations: %w", err)
	}

	res, err := tx.Exec("DELETE FROM trips WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting trip %s: %w", id, err)
	}
	changed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading affected rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing trip deletion: %w", err)
	}
	return changed > 0, nil
}

// hydrateTripChildren loads the trip's mills and collections. A trip with
// none of either gets empty slices.
func (s *TripStore) hydrateTripChildren(t *types.Trip) error {
	mills := []types.Mill{}
	rows, err := s.db.Query(`
SELECT m.id, m.name, m.lat, m.lng, m.contactPerson, m.phoneNumber, m.avgDailyProduction, m.userId
FROM trip_mills tm
JOIN mills m ON tm.millId = m.id
WHERE tm.tripId = ?`, t.ID)
	if err != nil {
		return fmt.Errorf("loading mills for trip %s: %w", t.ID, err)
	}
	for rows.Next() {
		m, err := scanMill(rows)
		if err != nil {
			rows.Close()
			return fmt.Errorf("scanning trip mill: %w", err)
		}
		mills = append(mills, m)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterating trip mills: %w", err)
	}
	rows.Close()
	t.Mills = mills

	collections, err := s.loadCollections(
		"SELECT "+collectionColumns+" FROM collections WHERE tripId = ?", t.ID)
	if err != nil {
		return fmt.Errorf("loading collections for trip %s: %w", t.ID, err)
	}
	t.Collections = collections
	return nil
}

// loadCollections runs a collection query and hydrates the rows.
func (s *TripStore) loadCollections(query string, args ...any) ([]types.Collection, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying collections: %w", err)
	}
	defer rows.Close()

	collections := []types.Collection{}
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning collection: %w", err)
		}
		collections = append(collections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating collections: %w", err)
	}
	return collections, nil
}

// scanTrip hydrates the trip row with its joined vehicle and driver. The
// vehicle carries the same driver the trip does, matching the join.
func scanTrip(rows *sql.Rows) (types.Trip, error) {
	var t types.Trip
	var scheduled string
	err := rows.Scan(
		&t.ID, &scheduled, &t.Status, &t.EstimatedDuration, &t.UserID,
		&t.Vehicle.ID, &t.Vehicle.PlateNumber, &t.Vehicle.Type, &t.Vehicle.Capacity,
		&t.Vehicle.Status, &t.Vehicle.UserID,
		&t.Driver.ID, &t.Driver.Name, &t.Driver.LicenseNumber, &t.Driver.PhoneNumber,
		&t.Driver.Status, &t.Driver.UserID,
	)
	if err != nil {
		return types.Trip{}, err
	}
	t.ScheduledDate = parseStoredTime(scheduled)
	t.Vehicle.Driver = t.Driver
	return t, nil
}

// parseStoredTime parses an RFC 3339 date column. An unparsable value reads
// as the zero time; callers treat that as a missing date.
func parseStoredTime(v string) time.Time {
	ts, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}
	}
	return ts
}
