// Package database implements the embedded SQLite data layer for the fleet
// dashboard: the persistence lifecycle over a serialized blob, the schema,
// first-run seeding, and one store per entity.
package database

import (
	"database/sql"
	"fmt"
)

// Schema DDL. Every status column carries a CHECK constraint; ownership is
// the userId column on each business table. The batch is idempotent so
// initialization can run against a restored database without errors.
const (
	createUsers = `CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT UNIQUE NOT NULL,
    name TEXT NOT NULL,
    role TEXT NOT NULL CHECK(role IN ('admin', 'client')),
    password TEXT NOT NULL,
    created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

	createDrivers = `CREATE TABLE IF NOT EXISTS drivers (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    licenseNumber TEXT NOT NULL,
    phoneNumber TEXT NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('AVAILABLE', 'ON_TRIP', 'OFF_DUTY', 'SICK')),
    userId TEXT NOT NULL,
    created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

	createVehicles = `CREATE TABLE IF NOT EXISTS vehicles (
    id TEXT PRIMARY KEY,
    plateNumber TEXT NOT NULL,
    type TEXT NOT NULL CHECK(type IN ('TRUCK', 'VAN', 'PICKUP')),
    capacity REAL NOT NULL,
    driverId TEXT NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('AVAILABLE', 'IN_USE', 'MAINTENANCE', 'UNAVAILABLE')),
    userId TEXT NOT NULL,
    created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (driverId) REFERENCES drivers (id)
);`

	createMills = `CREATE TABLE IF NOT EXISTS mills (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    lat REAL NOT NULL,
    lng REAL NOT NULL,
    contactPerson TEXT NOT NULL,
    phoneNumber TEXT NOT NULL,
    avgDailyProduction REAL NOT NULL,
    userId TEXT NOT NULL,
    created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

	createTrips = `CREATE TABLE IF NOT EXISTS trips (
    id TEXT PRIMARY KEY,
    vehicleId TEXT NOT NULL,
    driverId TEXT NOT NULL,
    scheduledDate TEXT NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('SCHEDULED', 'IN_PROGRESS', 'COMPLETED', 'CANCELLED')),
    estimatedDuration INTEGER NOT NULL,
    userId TEXT NOT NULL,
    created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

	createTripMills = `CREATE TABLE IF NOT EXISTS trip_mills (
    tripId TEXT NOT NULL,
    millId TEXT NOT NULL,
    created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (tripId, millId),
    FOREIGN KEY (tripId) REFERENCES trips (id),
    FOREIGN KEY (millId) REFERENCES mills (id)
);`

	// collections.tripId is intentionally unconstrained: NULL marks a manual
	// production entry, and the status domain admits COMPLETED for those.
	createCollections = `CREATE TABLE IF NOT EXISTS collections (
    id TEXT PRIMARY KEY,
    tripId TEXT,
    millId TEXT NOT NULL,
    timestamp TEXT NOT NULL,
    weight REAL NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('PENDING', 'COLLECTED', 'DELIVERED', 'COMPLETED')),
    userId TEXT NOT NULL,
    created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);`
)

// Index DDL for the columns the list queries search and sort on.
const (
	idxVehiclesPlate     = `CREATE INDEX IF NOT EXISTS idx_vehicles_plateNumber ON vehicles(plateNumber);`
	idxDriversName       = `CREATE INDEX IF NOT EXISTS idx_drivers_name ON drivers(name);`
	idxMillsName         = `CREATE INDEX IF NOT EXISTS idx_mills_name ON mills(name);`
	idxTripsStatusDate   = `CREATE INDEX IF NOT EXISTS idx_trips_status_date ON trips(status, scheduledDate);`
	idxCollectionsStatus = `CREATE INDEX IF NOT EXISTS idx_collections_status_timestamp ON collections(status, timestamp);`
	idxCollectionsTripID = `CREATE INDEX IF NOT EXISTS idx_collections_tripId ON collections(tripId);`
	idxTripMillsMillID   = `CREATE INDEX IF NOT EXISTS idx_trip_mills_millId ON trip_mills(millId);`
)

// schemaDDL lists the CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createUsers,
	createDrivers,
	createVehicles,
	createMills,
	createTrips,
	createTripMills,
	createCollections,
}

// indexDDL lists the CREATE INDEX statements.
var indexDDL = []string{
	idxVehiclesPlate,
	idxDriversName,
	idxMillsName,
	idxTripsStatusDate,
	idxCollectionsStatus,
	idxCollectionsTripID,
	idxTripMillsMillID,
}

// initSchema executes the full schema batch against db.
func initSchema(db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating table: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	return nil
}
