package api

import (
	"database/sql"
	"io"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/mgufindo/ffb-swt/internal/database"
	"github.com/mgufindo/ffb-swt/internal/storage"
	"github.com/mgufindo/ffb-swt/pkg/types"
)

// newTestClient initializes a seeded database in a temp dir and returns a
// facade over it. The logger is silenced so swallowed errors stay out of
// test output.
func newTestClient(t *testing.T) (*Client, *sql.DB) {
	t.Helper()

	dir := t.TempDir()
	store := storage.NewFileStore(filepath.Join(dir, "store.json"))
	manager := database.NewManager(store, types.Config{DataDir: filepath.Join(dir, "data")})
	db, err := manager.Initialize()
	require.NoError(t, err)
	t.Cleanup(func() { manager.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(db, log), db
}

func TestPageBounds(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		limit      int
		offset     int
	}{
		{name: "first page", page: 1, size: 10, limit: 10, offset: 0},
		{name: "third page", page: 3, size: 5, limit: 5, offset: 10},
		{name: "zero page clamps to first", page: 0, size: 5, limit: 5, offset: 0},
		{name: "zero size uses default", page: 2, size: 0, limit: DefaultPageSize, offset: DefaultPageSize},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			limit, offset := pageBounds(tc.page, tc.size)
			assert.Equal(t, tc.limit, limit)
			assert.Equal(t, tc.offset, offset)
		})
	}
}

func TestFetchDriversPaging(t *testing.T) {
	c, _ := newTestClient(t)

	// Seed leaves ten drivers; page through with a size of 3.
	pageSize := 3
	page, err := c.FetchDrivers(1, pageSize, "", "")
	require.NoError(t, err)
	assert.Len(t, page.Data, pageSize)
	assert.Equal(t, 10, page.Total)

	pages := int(math.Ceil(float64(page.Total) / float64(pageSize)))
	assert.Equal(t, 4, pages)

	last, err := c.FetchDrivers(pages, pageSize, "", "")
	require.NoError(t, err)
	assert.Len(t, last.Data, 1)
	assert.Equal(t, 10, last.Total)
}

func TestFetchDriversSearchScopesTotal(t *testing.T) {
	c, _ := newTestClient(t)

	page, err := c.FetchDrivers(1, 10, "Driver 3", "")
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Driver 3", page.Data[0].Name)
	assert.Equal(t, 1, page.Total, "total reflects the filtered count, not the table size")
}

func TestFetchDriverNotFound(t *testing.T) {
	c, _ := newTestClient(t)

	_, err := c.FetchDriver("no-such-id")
	require.Error(t, err)
	assert.EqualError(t, err, "driver not found")
}

func TestDriverLifecycleThroughFacade(t *testing.T) {
	c, _ := newTestClient(t)

	clients, err := c.FetchClients()
	require.NoError(t, err)
	require.NotEmpty(t, clients)

	id, err := c.AddDriver(types.Driver{
		Name:          "Facade Driver",
		LicenseNumber: "DL9999",
		PhoneNumber:   "+62999",
		Status:        types.DriverAvailable,
		UserID:        clients[0].ID,
	})
	require.NoError(t, err)

	name := "Renamed Driver"
	require.NoError(t, c.ModifyDriver(id, types.DriverUpdate{Name: &name}))

	d, err := c.FetchDriver(id)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Driver", d.Name)

	require.NoError(t, c.RemoveDriver(id))
	_, err = c.FetchDriver(id)
	assert.EqualError(t, err, "driver not found")
}

func TestModifyMissingEntities(t *testing.T) {
	c, _ := newTestClient(t)

	name := "Ghost"
	status := types.TripCancelled

	tests := []struct {
		name string
		call func() error
		want string
	}{
		{name: "driver", call: func() error { return c.ModifyDriver("nope", types.DriverUpdate{Name: &name}) }, want: "driver not found"},
		{name: "vehicle", call: func() error { return c.ModifyVehicle("nope", types.VehicleUpdate{PlateNumber: &name}) }, want: "vehicle not found"},
		{name: "mill", call: func() error { return c.ModifyMill("nope", types.MillUpdate{Name: &name}) }, want: "mill not found"},
		{name: "trip", call: func() error { return c.ModifyTrip("nope", types.TripUpdate{Status: &status}) }, want: "trip not found"},
		{name: "collection", call: func() error { return c.RemoveCollection("nope") }, want: "collection not found"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.EqualError(t, tc.call(), tc.want)
		})
	}
}

func TestLogin(t *testing.T) {
	c, _ := newTestClient(t)

	t.Run("valid credentials", func(t *testing.T) {
		u, err := c.Login("admin@ffb.com", "admin123")
		require.NoError(t, err)
		assert.Equal(t, types.RoleAdmin, u.Role)
		assert.Empty(t, u.Password)
	})

	t.Run("failures share one message", func(t *testing.T) {
		_, badEmail := c.Login("nobody@ffb.com", "admin123")
		_, badPassword := c.Login("admin@ffb.com", "wrong")
		require.Error(t, badEmail)
		require.Error(t, badPassword)
		assert.Equal(t, badEmail.Error(), badPassword.Error())
		assert.EqualError(t, badEmail, "invalid email or password")
	})
}

func TestTripsThroughFacade(t *testing.T) {
	c, db := newTestClient(t)

	drivers, err := c.FetchDrivers(1, 1, "Driver 1", "")
	require.NoError(t, err)
	require.NotEmpty(t, drivers.Data)
	driver := drivers.Data[0]

	vehicles, err := c.FetchVehicles(1, 1, "Driver 1", "")
	require.NoError(t, err)
	require.NotEmpty(t, vehicles.Data)
	vehicle := vehicles.Data[0]

	mills, err := c.FetchMills(1, 1, "", "")
	require.NoError(t, err)
	require.NotEmpty(t, mills.Data)
	mill := mills.Data[0]

	id, err := c.AddTrip(types.Trip{
		Vehicle:           vehicle,
		Driver:            driver,
		Mills:             []types.Mill{mill},
		ScheduledDate:     time.Now().UTC().Add(24 * time.Hour),
		Status:            types.TripScheduled,
		EstimatedDuration: 120,
		UserID:            driver.UserID,
	})
	require.NoError(t, err)

	t.Run("fetch by mill", func(t *testing.T) {
		page, err := c.FetchTripsByMill(mill.ID, 1, 10)
		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		assert.Equal(t, id, page.Data[0].ID)
		assert.Equal(t, 1, page.Total)
	})

	t.Run("status change flips vehicle", func(t *testing.T) {
		status := types.TripInProgress
		require.NoError(t, c.ModifyTrip(id, types.TripUpdate{Status: &status}))

		var vStatus string
		require.NoError(t, db.QueryRow("SELECT status FROM vehicles WHERE id = ?", vehicle.ID).Scan(&vStatus))
		assert.Equal(t, types.VehicleInUse, vStatus)
	})

	t.Run("remove cascades", func(t *testing.T) {
		require.NoError(t, c.RemoveTrip(id))
		_, err := c.FetchTrip(id)
		assert.EqualError(t, err, "trip not found")
	})
}

func TestAddMillProductionThroughFacade(t *testing.T) {
	c, _ := newTestClient(t)

	mills, err := c.FetchMills(1, 1, "", "")
	require.NoError(t, err)
	require.NotEmpty(t, mills.Data)
	mill := mills.Data[0]

	id, err := c.AddMillProduction(mill.ID, 14.5, mill.UserID)
	require.NoError(t, err)

	rec, err := c.FetchCollection(id)
	require.NoError(t, err)
	assert.Equal(t, types.CollectionCompleted, rec.Status)
	assert.Empty(t, rec.TripID)

	today, err := c.FetchTodayCollections(mill.ID)
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, 14.5, today[0].Weight)
}
