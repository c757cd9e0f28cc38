package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mgufindo/ffb-swt/pkg/types"
)

// CollectionStore implements collection CRUD. Collections come in two
// flavors: rows tied to a trip, and manual production entries with no trip.
type CollectionStore struct {
	db *sql.DB
}

// NewCollectionStore returns a CollectionStore bound to db.
func NewCollectionStore(db *sql.DB) *CollectionStore {
	return &CollectionStore{db: db}
}

const collectionColumns = "id, tripId, millId, timestamp, weight, status, userId"

// List returns collections ordered by timestamp, newest first.
func (s *CollectionStore) List(limit, offset int) ([]types.Collection, error) {
	return s.query(
		"SELECT "+collectionColumns+" FROM collections ORDER BY timestamp DESC LIMIT ? OFFSET ?",
		limit, offset,
	)
}

// ByMill returns the mill's collections, newest first.
func (s *CollectionStore) ByMill(millID string, limit, offset int) ([]types.Collection, error) {
	return s.query(
		"SELECT "+collectionColumns+" FROM collections WHERE millId = ? ORDER BY timestamp DESC LIMIT ? OFFSET ?",
		millID, limit, offset,
	)
}

// ByTrip returns the trip's collections, newest first.
func (s *CollectionStore) ByTrip(tripID string) ([]types.Collection, error) {
	return s.query(
		"SELECT "+collectionColumns+" FROM collections WHERE tripId = ? ORDER BY timestamp DESC",
		tripID,
	)
}

// TodayByMill returns the mill's collections stamped today, newest first.
func (s *CollectionStore) TodayByMill(millID string) ([]types.Collection, error) {
	return s.query(
		"SELECT "+collectionColumns+" FROM collections WHERE millId = ? AND date(timestamp) = date('now') ORDER BY timestamp DESC",
		millID,
	)
}

// Count returns the total number of collections.
func (s *CollectionStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM collections").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting collections: %w", err)
	}
	return count, nil
}

// GetByID returns the collection and whether it exists.
func (s *CollectionStore) GetByID(id string) (types.Collection, bool, error) {
	rows, err := s.db.Query("SELECT "+collectionColumns+" FROM collections WHERE id = ?", id)
	if err != nil {
		return types.Collection{}, false, fmt.Errorf("getting collection %s: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return types.Collection{}, false, fmt.Errorf("getting collection %s: %w", id, err)
		}
		return types.Collection{}, false, nil
	}
	c, err := scanCollection(rows)
	if err != nil {
		return types.Collection{}, false, fmt.Errorf("scanning collection %s: %w", id, err)
	}
	return c, true, nil
}

// Create inserts a collection and returns the generated ID. An empty TripID
// is stored as NULL, marking a manual production entry.
func (s *CollectionStore) Create(c types.Collection) (string, error) {
	if !types.ValidCollectionStatus(c.Status) {
		return "", types.ErrInvalidStatus
	}

	id := uuid.New().String()
	var tripID any
	if c.TripID != "" {
		tripID = c.TripID
	}
	_, err := s.db.Exec(
		"INSERT INTO collections (id, tripId, millId, timestamp, weight, status, userId) VALUES (?, ?, ?, ?, ?, ?, ?)",
		id, tripID, c.MillID, c.Timestamp.UTC().Format(time.RFC3339), c.Weight, c.Status, c.UserID,
	)
	if err != nil {
		return "", fmt.Errorf("creating collection: %w", err)
	}
	return id, nil
}

// AddMillProduction records a manual production entry for the mill: no trip,
// stamped now, status COMPLETED.
func (s *CollectionStore) AddMillProduction(millID string, weight float64, userID string) (string, error) {
	return s.Create(types.Collection{
		MillID:    millID,
		Timestamp: time.Now().UTC(),
		Weight:    weight,
		Status:    types.CollectionCompleted,
		UserID:    userID,
	})
}

// Update applies the non-nil fields and reports whether a row changed.
func (s *CollectionStore) Update(id string, u types.CollectionUpdate) (bool, error) {
	if u.Empty() {
		return false, nil
	}

	var fields []string
	var args []any

	if u.Weight != nil {
		fields = append(fields, "weight = ?")
		args = append(args, *u.Weight)
	}
	if u.Status != nil {
		if !types.ValidCollectionStatus(*u.Status) {
			return false, types.ErrInvalidStatus
		}
		fields = append(fields, "status = ?")
		args = append(args, *u.Status)
	}
	if u.Timestamp != nil {
		fields = append(fields, "timestamp = ?")
		args = append(args, u.Timestamp.UTC().Format(time.RFC3339))
	}
	if u.TripID != nil {
		fields = append(fields, "tripId = ?")
		if *u.TripID == "" {
			args = append(args, nil)
		} else {
			args = append(args, *u.TripID)
		}
	}
	if u.MillID != nil {
		fields = append(fields, "millId = ?")
		args = append(args, *u.MillID)
	}

	fields = append(fields, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	res, err := s.db.Exec("UPDATE collections SET "+strings.Join(fields, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return false, fmt.Errorf("updating collection %s: %w", id, err)
	}
	changed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading affected rows: %w", err)
	}
	return changed > 0, nil
}

// Delete removes the collection and reports whether a row was deleted.
func (s *CollectionStore) Delete(id string) (bool, error) {
	res, err := s.db.Exec("DELETE FROM collections WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting collection %s: %w", id, err)
	}
	changed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading affected rows: %w", err)
	}
	return changed > 0, nil
}

// query runs a collection select and hydrates the rows.
func (s *CollectionStore) query(query string, args ...any) ([]types.Collection, error) {
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

// scanCollection hydrates a collection from the standard column set. A NULL
// tripId reads as the empty string.
func scanCollection(rows *sql.Rows) (types.Collection, error) {
	var c types.Collection
	var tripID sql.NullString
	var ts string
	err := rows.Scan(&c.ID, &tripID, &c.MillID, &ts, &c.Weight, &c.Status, &c.UserID)
	if err != nil {
		return types.Collection{}, err
	}
	c.TripID = tripID.String
	c.Timestamp = parseStoredTime(ts)
	return c, nil
}
