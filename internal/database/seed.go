// First-run demo data: one admin, two client accounts, two mills, ten
// drivers and ten trucks bound 1:1 to the drivers. Seeding is gated on the
// users row count and runs as a single transaction, so a partially seeded
// database cannot occur.
package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/mgufindo/ffb-swt/pkg/types"
)

// seedUser describes an account inserted on first run.
type seedUser struct {
	email    string
	name     string
	role     string
	password string
}

var seedUsers = []seedUser{
	{"admin@ffb.com", "System Administrator", types.RoleAdmin, "admin123"},
	{"client1@mill.com", "Mill Client 1", types.RoleClient, "client123"},
	{"client2@mill.com", "Mill Client 2", types.RoleClient, "client123"},
}

// seedMill describes a demo mill, owned by the admin account.
type seedMill struct {
	id            string
	name          string
	lat, lng      float64
	contactPerson string
	phoneNumber   string
}

var seedMills = []seedMill{
	{"mill-1", "Palm Oil Mill 1", 3.1390, 101.6869, "Robert Johnson", "+1234567890"},
	{"mill-2", "Palm Oil Mill 2", 3.0738, 101.5183, "Sarah Williams", "+0987654321"},
}

const (
	seedFleetSize          = 10
	seedMillDailyProduction = 240
	seedTruckCapacity       = 12
)

// seedInitialData populates the demo records once. A non-zero users count
// means the database already holds data; seeding is skipped entirely.
func seedInitialData(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if count > 0 {
		logrus.WithField("component", "seed").Debug("database already contains data, skipping seeding")
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	var adminID string
	for _, u := range seedUsers {
		id := uuid.New().String()
		if u.role == types.RoleAdmin {
			adminID = id
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing password for %s: %w", u.email, err)
		}
		_, err = tx.Exec(
			"INSERT INTO users (id, email, name, role, password) VALUES (?, ?, ?, ?, ?)",
			id, u.email, u.name, u.role, string(hash),
		)
		if err != nil {
			return fmt.Errorf("seeding user %s: %w", u.email, err)
		}
	}

	for _, m := range seedMills {
		_, err := tx.Exec(
			"INSERT INTO mills (id, name, lat, lng, contactPerson, phoneNumber, avgDailyProduction, userId) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			m.id, m.name, m.lat, m.lng, m.contactPerson, m.phoneNumber, float64(seedMillDailyProduction), adminID,
		)
		if err != nil {
			return fmt.Errorf("seeding mill %s: %w", m.name, err)
		}
	}

	for i := 1; i <= seedFleetSize; i++ {
		driverID := uuid.New().String()
		_, err := tx.Exec(
			"INSERT INTO drivers (id, name, licenseNumber, phoneNumber, status, userId) VALUES (?, ?, ?, ?, ?, ?)",
			driverID,
			fmt.Sprintf("Driver %d", i),
			fmt.Sprintf("DL%d", 1000+i),
			fmt.Sprintf("+621234567%d", i),
			types.DriverAvailable,
			adminID,
		)
		if err != nil {
			return fmt.Errorf("seeding driver %d: %w", i, err)
		}

		_, err = tx.Exec(
			"INSERT INTO vehicles (id, plateNumber, type, capacity, driverId, status, userId) VALUES (?, ?, ?, ?, ?, ?, ?)",
			uuid.New().String(),
			fmt.Sprintf("B %d XYZ", 1000+i),
			types.VehicleTruck,
			float64(seedTruckCapacity),
			driverID,
			types.VehicleAvailable,
			adminID,
		)
		if err != nil {
			return fmt.Errorf("seeding vehicle %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}

	logrus.WithField("component", "seed").Info("database seeded with initial data")
	return nil
}
