package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mgufindo/ffb-swt/pkg/types"
)

// MillStore implements mill CRUD.
type MillStore struct {
	db *sql.DB
}

// NewMillStore returns a MillStore bound to db.
func NewMillStore(db *sql.DB) *MillStore {
	return &MillStore{db: db}
}

const millColumns = "id, name, lat, lng, contactPerson, phoneNumber, avgDailyProduction, userId"

// millSearchPredicate matches the name, contact, phone and the coordinates
// rendered as text. Shared by List and Count.
const millSearchPredicate = `(name LIKE ? OR contactPerson LIKE ? OR phoneNumber LIKE ?
    OR CAST(lat AS TEXT) LIKE ? OR CAST(lng AS TEXT) LIKE ?)`

// List returns mills ordered by name.
func (s *MillStore) List(limit, offset int, search, ownerID string) ([]types.Mill, error) {
	query := "SELECT " + millColumns + " FROM mills WHERE 1=1"
	var args []any

	if search != "" {
		pattern := "%" + search + "%"
		query += " AND " + millSearchPredicate
		args = append(args, pattern, pattern, pattern, pattern, pattern)
	}
	if ownerID != "" {
		query += " AND userId = ?"
		args = append(args, ownerID)
	}

	query += " ORDER BY name ASC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing mills: %w", err)
	}
	defer rows.Close()

	mills := []types.Mill{}
	for rows.Next() {
		m, err := scanMill(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning mill: %w", err)
		}
		mills = append(mills, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mills: %w", err)
	}
	return mills, nil
}

// Count mirrors List's predicate and returns the row count.
func (s *MillStore) Count(search, ownerID string) (int, error) {
	query := "SELECT COUNT(*) FROM mills WHERE 1=1"
	var args []any

	if search != "" {
		pattern := "%" + search + "%"
		query += " AND " + millSearchPredicate
		args = append(args, pattern, pattern, pattern, pattern, pattern)
	}
	if ownerID != "" {
		query += " AND userId = ?"
		args = append(args, ownerID)
	}

	var count int
	if err := s.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting mills: %w", err)
	}
	return count, nil
}

// GetByID returns the mill and whether it exists.
func (s *MillStore) GetByID(id string) (types.Mill, bool, error) {
	row := s.db.QueryRow("SELECT "+millColumns+" FROM mills WHERE id = ?", id)

	var m types.Mill
	err := row.Scan(&m.ID, &m.Name, &m.Location.Lat, &m.Location.Lng,
		&m.ContactPerson, &m.PhoneNumber, &m.AvgDailyProduction, &m.UserID)
	if err == sql.ErrNoRows {
		return types.Mill{}, false, nil
	}
	if err != nil {
		return types.Mill{}, false, fmt.Errorf("getting mill %s: %w", id, err)
	}
	return m, true, nil
}

// Create inserts a mill and returns the generated ID.
func (s *MillStore) Create(m types.Mill) (string, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(
		"INSERT INTO mills (id, name, lat, lng, contactPerson, phoneNumber, avgDailyProduction, userId) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		id, m.Name, m.Location.Lat, m.Location.Lng, m.ContactPerson, m.PhoneNumber, m.AvgDailyProduction, m.UserID,
	)
	if err != nil {
		return "", fmt.Errorf("creating mill: %w", err)
	}
	return id, nil
}

// Update applies the non-nil fields and reports whether a row changed.
func (s *MillStore) Update(id string, u types.MillUpdate) (bool, error) {
	if u.Empty() {
		return false, nil
	}

	var fields []string
	var args []any

	if u.Name != nil {
		fields = append(fields, "name = ?")
		args = append(args, *u.Name)
	}
	if u.Location != nil {
		fields = append(fields, "lat = ?", "lng = ?")
		args = append(args, u.Location.Lat, u.Location.Lng)
	}
	if u.ContactPerson != nil {
		fields = append(fields, "contactPerson = ?")
		args = append(args, *u.ContactPerson)
	}
	if u.PhoneNumber != nil {
		fields = append(fields, "phoneNumber = ?")
		args = append(args, *u.PhoneNumber)
	}
	if u.AvgDailyProduction != nil {
		fields = append(fields, "avgDailyProduction = ?")
		args = append(args, *u.AvgDailyProduction)
	}

	fields = append(fields, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	res, err := s.db.Exec("UPDATE mills SET "+strings.Join(fields, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return false, fmt.Errorf("updating mill %s: %w", id, err)
	}
	changed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading affected rows: %w", err)
	}
	return changed > 0, nil
}

// Delete removes the mill and reports whether a row was deleted.
func (s *MillStore) Delete(id string) (bool, error) {
	res, err := s.db.Exec("DELETE FROM mills WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting mill %s: %w", id, err)
	}
	changed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading affected rows: %w", err)
	}
	return changed > 0, nil
}

// scanMill hydrates a mill from the standard column set.
func scanMill(rows *sql.Rows) (types.Mill, error) {
	var m types.Mill
	err := rows.Scan(&m.ID, &m.Name, &m.Location.Lat, &m.Location.Lng,
		&m.ContactPerson, &m.PhoneNumber, &m.AvgDailyProduction, &m.UserID)
	return m, err
}
