package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mgufindo/ffb-swt/pkg/types"
)

// VehicleStore implements vehicle CRUD. List reads join the owned driver row
// and the owning account so callers get the nested entity in one pass.
type VehicleStore struct {
	db *sql.DB
}

// NewVehicleStore returns a VehicleStore bound to db.
func NewVehicleStore(db *sql.DB) *VehicleStore {
	return &VehicleStore{db: db}
}

const vehicleJoin = `
FROM vehicles v
JOIN drivers d ON v.driverId = d.id
JOIN users u ON v.userId = u.id`

const vehicleSelect = `
SELECT v.id, v.plateNumber, v.type, v.capacity, v.status, v.userId,
       d.id, d.name, d.licenseNumber, d.phoneNumber, d.status, d.userId,
       u.name` + vehicleJoin

// vehicleSearchPredicate matches the plate number and the driver's name and
// phone. Shared by List and Count so page math stays consistent.
const vehicleSearchPredicate = "(v.plateNumber LIKE ? OR d.name LIKE ? OR d.phoneNumber LIKE ?)"

// List returns vehicles with their driver and owner name hydrated.
func (s *VehicleStore) List(limit, offset int, search, ownerID string) ([]types.Vehicle, error) {
	query := vehicleSelect + " WHERE 1=1"
	var args []any

	if search != "" {
		pattern := "%" + search + "%"
		query += " AND " + vehicleSearchPredicate
		args = append(args, pattern, pattern, pattern)
	}
	if ownerID != "" {
		query += " AND v.userId = ?"
		args = append(args, ownerID)
	}

	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := []types.Vehicle{}
	for rows.Next() {
		var v types.Vehicle
		err := rows.Scan(
			&v.ID, &v.PlateNumber, &v.Type, &v.Capacity, &v.Status, &v.UserID,
			&v.Driver.ID, &v.Driver.Name, &v.Driver.LicenseNumber, &v.Driver.PhoneNumber,
			&v.Driver.Status, &v.Driver.UserID,
			&v.OwnerName,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vehicles: %w", err)
	}
	return vehicles, nil
}

// Count mirrors List's predicate and returns the row count.
func (s *VehicleStore) Count(search, ownerID string) (int, error) {
	query := "SELECT COUNT(*)" + vehicleJoin + " WHERE 1=1"
	var args []any

	if search != "" {
		pattern := "%" + search + "%"
		query += " AND " + vehicleSearchPredicate
		args = append(args, pattern, pattern, pattern)
	}
	if ownerID != "" {
		query += " AND v.userId = ?"
		args = append(args, ownerID)
	}

	var count int
	if err := s.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting vehicles: %w", err)
	}
	return count, nil
}

// GetByID returns the vehicle with its driver hydrated, and whether it exists.
func (s *VehicleStore) GetByID(id string) (types.Vehicle, bool, error) {
	row := s.db.QueryRow(vehicleSelect+" WHERE v.id = ?", id)

	var v types.Vehicle
	err := row.Scan(
		&v.ID, &v.PlateNumber, &v.Type, &v.Capacity, &v.Status, &v.UserID,
		&v.Driver.ID, &v.Driver.Name, &v.Driver.LicenseNumber, &v.Driver.PhoneNumber,
		&v.Driver.Status, &v.Driver.UserID,
		&v.OwnerName,
	)
	if err == sql.ErrNoRows {
		return types.Vehicle{}, false, nil
	}
	if err != nil {
		return types.Vehicle{}, false, fmt.Errorf("getting vehicle %s: %w", id, err)
	}
	return v, true, nil
}

// Create inserts a vehicle bound to v.Driver.ID and marks that driver
// ON_TRIP. The upstream dashboard has always coupled assignment to the
// ON_TRIP status even though the vehicle starts out AVAILABLE; kept as-is so
// persisted databases stay consistent with it.
func (s *VehicleStore) Create(v types.Vehicle) (string, error) {
	if !types.ValidVehicleType(v.Type) {
		return "", types.ErrInvalidStatus
	}
	if !types.ValidVehicleStatus(v.Status) {
		return "", types.ErrInvalidStatus
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	id := uuid.New().String()
	_, err = tx.Exec(
		"INSERT INTO vehicles (id, plateNumber, type, capacity, driverId, status, userId) VALUES (?, ?, ?, ?, ?, ?, ?)",
		id, v.PlateNumber, v.Type, v.Capacity, v.Driver.ID, v.Status, v.UserID,
	)
	if err != nil {
		return "", fmt.Errorf("creating vehicle: %w", err)
	}

	_, err = tx.Exec("UPDATE drivers SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		types.DriverOnTrip, v.Driver.ID)
	if err != nil {
		return "", fmt.Errorf("updating driver status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing vehicle: %w", err)
	}
	return id, nil
}

// Update applies the non-nil fields and reports whether a row changed.
func (s *VehicleStore) Update(id string, u types.VehicleUpdate) (bool, error) {
	if u.Empty() {
		return false, nil
	}

	var fields []string
	var args []any

	if u.PlateNumber != nil {
		fields = append(fields, "plateNumber = ?")
		args = append(args, *u.PlateNumber)
	}
	if u.Type != nil {
		if !types.ValidVehicleType(*u.Type) {
			return false, types.ErrInvalidStatus
		}
		fields = append(fields, "type = ?")
		args = append(args, *u.Type)
	}
	if u.Capacity != nil {
		fields = append(fields, "capacity = ?")
		args = append(args, *u.Capacity)
	}
	if u.DriverID != nil {
		fields = append(fields, "driverId = ?")
		args = append(args, *u.DriverID)
	}
	if u.Status != nil {
		if !types.ValidVehicleStatus(*u.Status) {
			return false, types.ErrInvalidStatus
		}
		fields = append(fields, "status = ?")
		args = append(args, *u.Status)
	}

	fields = append(fields, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	res, err := s.db.Exec("UPDATE vehicles SET "+strings.Join(fields, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return false, fmt.Errorf("updating vehicle %s: %w", id, err)
	}
	changed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading affected rows: %w", err)
	}
	return changed > 0, nil
}

// Delete resets the assigned driver to AVAILABLE, then removes the vehicle.
func (s *VehicleStore) Delete(id string) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var driverID string
	err = tx.QueryRow("SELECT driverId FROM vehicles WHERE id = ?", id).Scan(&driverID)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading vehicle %s: %w", id, err)
	}

	_, err = tx.Exec("UPDATE drivers SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		types.DriverAvailable, driverID)
	if err != nil {
		return false, fmt.Errorf("resetting driver status: %w", err)
	}

	res, err := tx.Exec("DELETE FROM vehicles WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting vehicle %s: %w", id, err)
	}
	changed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading affected rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing vehicle deletion: %w", err)
	}
	return changed > 0, nil
}
