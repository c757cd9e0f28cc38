// Shared fixtures for the database package tests.
package database

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/mgufindo/ffb-swt/pkg/types"
)

// setupTestDB opens a SQLite database file in a temp dir and initializes the
// schema without seeding, so tests control every row.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "fleet.db")
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)

	require.NoError(t, initSchema(db))
	return db
}

// mustUser inserts a user row directly and returns its id. The password is
// stored as given, so it is only usable with UserStore when pre-hashed.
func mustUser(t *testing.T, db *sql.DB, email, role, password string) string {
	t.Helper()

	id := uuid.New().String()
	_, err := db.Exec(
		"INSERT INTO users (id, email, name, role, password) VALUES (?, ?, ?, ?, ?)",
		id, email, "Test "+email, role, password,
	)
	require.NoError(t, err)
	return id
}

// mustDriver creates a driver through the store and returns its id.
func mustDriver(t *testing.T, db *sql.DB, name, userID string) string {
	t.Helper()

	id, err := NewDriverStore(db).Create(types.Driver{
		Name:          name,
		LicenseNumber: fmt.Sprintf("DL-%s", uuid.New().String()[:8]),
		PhoneNumber:   "+620000000",
		Status:        types.DriverAvailable,
		UserID:        userID,
	})
	require.NoError(t, err)
	return id
}

// mustVehicle creates a vehicle bound to driverID and returns its id.
func mustVehicle(t *testing.T, db *sql.DB, plate, driverID, userID string) string {
	t.Helper()

	id, err := NewVehicleStore(db).Create(types.Vehicle{
		PlateNumber: plate,
		Type:        types.VehicleTruck,
		Capacity:    12,
		Driver:      types.Driver{ID: driverID},
		Status:      types.VehicleAvailable,
		UserID:      userID,
	})
	require.NoError(t, err)
	return id
}

// mustMill creates a mill and returns its id.
func mustMill(t *testing.T, db *sql.DB, name, userID string) string {
	t.Helper()

	id, err := NewMillStore(db).Create(types.Mill{
		Name:               name,
		Location:           types.GeoLocation{Lat: 3.1390, Lng: 101.6869},
		ContactPerson:      "Contact Person",
		PhoneNumber:        "+621111111",
		AvgDailyProduction: 240,
		UserID:             userID,
	})
	require.NoError(t, err)
	return id
}

// driverStatus reads a driver's status column.
func driverStatus(t *testing.T, db *sql.DB, id string) string {
	t.Helper()

	var status string
	require.NoError(t, db.QueryRow("SELECT status FROM drivers WHERE id = ?", id).Scan(&status))
	return status
}

// vehicleStatus reads a vehicle's status column.
func vehicleStatus(t *testing.T, db *sql.DB, id string) string {
	t.Helper()

	var status string
	require.NoError(t, db.QueryRow("SELECT status FROM vehicles WHERE id = ?", id).Scan(&status))
	return status
}

// tripFixture creates the full entity chain a trip needs and returns the
// involved ids.
type tripFixture struct {
	userID    string
	driverID  string
	vehicleID string
	millID    string
}

func newTripFixture(t *testing.T, db *sql.DB) tripFixture {
	t.Helper()

	userID := mustUser(t, db, "owner@mill.com", types.RoleClient, "x")
	driverID := mustDriver(t, db, "Fixture Driver", userID)
	vehicleID := mustVehicle(t, db, "B 7777 FX", driverID, userID)
	millID := mustMill(t, db, "Fixture Mill", userID)
	return tripFixture{userID: userID, driverID: driverID, vehicleID: vehicleID, millID: millID}
}

// scheduledTomorrow is a stable future date for trip fixtures.
func scheduledTomorrow() time.Time {
	return time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)
}
