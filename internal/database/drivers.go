package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mgufindo/ffb-swt/pkg/types"
)

// DriverStore implements driver CRUD over parameterized SQL.
type DriverStore struct {
	db *sql.DB
}

// NewDriverStore returns a DriverStore bound to db.
func NewDriverStore(db *sql.DB) *DriverStore {
	return &DriverStore{db: db}
}

const driverColumns = "id, name, licenseNumber, phoneNumber, status, userId"

// List returns drivers matching the filters. search is a case-insensitive
// substring match on the name; ownerID, when non-empty, scopes to rows owned
// by that user; status, when non-empty, filters exactly.
func (s *DriverStore) List(limit, offset int, search, ownerID, status string) ([]types.Driver, error) {
	query := "SELECT " + driverColumns + " FROM drivers WHERE 1=1"
	var args []any

	if ownerID != "" {
		query += " AND userId = ?"
		args = append(args, ownerID)
	}
	if search != "" {
		query += " AND name LIKE ?"
		args = append(args, "%"+search+"%")
	}
	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}

	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing drivers: %w", err)
	}
	defer rows.Close()

	drivers := []types.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning driver: %w", err)
		}
		drivers = append(drivers, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating drivers: %w", err)
	}
	return drivers, nil
}

// Count mirrors List's search and owner predicate and returns the row count.
func (s *DriverStore) Count(search, ownerID string) (int, error) {
	query := "SELECT COUNT(*) FROM drivers WHERE 1=1"
	var args []any

	if search != "" {
		query += " AND name LIKE ?"
		args = append(args, "%"+search+"%")
	}
	if ownerID != "" {
		query += " AND userId = ?"
		args = append(args, ownerID)
	}

	var count int
	if err := s.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting drivers: %w", err)
	}
	return count, nil
}

// GetByID returns the driver and whether it exists.
func (s *DriverStore) GetByID(id string) (types.Driver, bool, error) {
	row := s.db.QueryRow("SELECT "+driverColumns+" FROM drivers WHERE id = ?", id)

	var d types.Driver
	err := row.Scan(&d.ID, &d.Name, &d.LicenseNumber, &d.PhoneNumber, &d.Status, &d.UserID)
	if err == sql.ErrNoRows {
		return types.Driver{}, false, nil
	}
	if err != nil {
		return types.Driver{}, false, fmt.Errorf("getting driver %s: %w", id, err)
	}
	return d, true, nil
}

// Create inserts a driver and returns the generated ID.
func (s *DriverStore) Create(d types.Driver) (string, error) {
	if !types.ValidDriverStatus(d.Status) {
		return "", types.ErrInvalidStatus
	}

	id := uuid.New().String()
	_, err := s.db.Exec(
		"INSERT INTO drivers (id, name, licenseNumber, phoneNumber, status, userId) VALUES (?, ?, ?, ?, ?, ?)",
		id, d.Name, d.LicenseNumber, d.PhoneNumber, d.Status, d.UserID,
	)
	if err != nil {
		return "", fmt.Errorf("creating driver: %w", err)
	}
	return id, nil
}

// Update applies the non-nil fields and reports whether a row changed.
func (s *DriverStore) Update(id string, u types.DriverUpdate) (bool, error) {
	if u.Empty() {
		return false, nil
	}

	var fields []string
	var args []any

	if u.Name != nil {
		fields = append(fields, "name = ?")
		args = append(args, *u.Name)
	}
	if u.LicenseNumber != nil {
		fields = append(fields, "licenseNumber = ?")
		args = append(args, *u.LicenseNumber)
	}
	if u.PhoneNumber != nil {
		fields = append(fields, "phoneNumber = ?")
		args = append(args, *u.PhoneNumber)
	}
	if u.Status != nil {
		if !types.ValidDriverStatus(*u.Status) {
			return false, types.ErrInvalidStatus
		}
		fields = append(fields, "status = ?")
		args = append(args, *u.Status)
	}
	if u.UserID != nil {
		fields = append(fields, "userId = ?")
		args = append(args, *u.UserID)
	}

	fields = append(fields, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	res, err := s.db.Exec("UPDATE drivers SET "+strings.Join(fields, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return false, fmt.Errorf("updating driver %s: %w", id, err)
	}
	changed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading affected rows: %w", err)
	}
	return changed > 0, nil
}

// Delete removes the driver and reports whether a row was deleted.
func (s *DriverStore) Delete(id string) (bool, error) {
	res, err := s.db.Exec("DELETE FROM drivers WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting driver %s: %w", id, err)
	}
	changed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading affected rows: %w", err)
	}
	return changed > 0, nil
}

// scanDriver hydrates a driver from the standard column set.
func scanDriver(rows *sql.Rows) (types.Driver, error) {
	var d types.Driver
	err := rows.Scan(&d.ID, &d.Name, &d.LicenseNumber, &d.PhoneNumber, &d.Status, &d.UserID)
	return d, err
}
