package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgufindo/ffb-swt/pkg/types"
)

func TestVehicleCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	store := NewVehicleStore(db)
	userID := mustUser(t, db, "owner@mill.com", types.RoleClient, "x")
	driverID := mustDriver(t, db, "Assigned Driver", userID)

	id, err := store.Create(types.Vehicle{
		PlateNumber: "B 4821 XYZ",
		Type:        types.VehicleTruck,
		Capacity:    12,
		Driver:      types.Driver{ID: driverID},
		Status:      types.VehicleAvailable,
		UserID:      userID,
	})
	require.NoError(t, err)

	v, found, err := store.GetByID(id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "B 4821 XYZ", v.PlateNumber)
	assert.Equal(t, types.VehicleTruck, v.Type)
	assert.Equal(t, "Assigned Driver", v.Driver.Name)
	assert.Equal(t, "Test owner@mill.com", v.OwnerName)
}

func TestVehicleCreateMarksDriverOnTrip(t *testing.T) {
	db := setupTestDB(t)
	userID := mustUser(t, db, "owner@mill.com", types.RoleClient, "x")
	driverID := mustDriver(t, db, "Busy Driver", userID)
	require.Equal(t, types.DriverAvailable, driverStatus(t, db, driverID))

	mustVehicle(t, db, "B 1111 AA", driverID, userID)

	assert.Equal(t, types.DriverOnTrip, driverStatus(t, db, driverID),
		"assignment takes the driver out of the AVAILABLE pool")
}

func TestVehicleCreateValidation(t *testing.T) {
	db := setupTestDB(t)
	store := NewVehicleStore(db)

	tests := []struct {
		name    string
		vehicle types.Vehicle
	}{
		{name: "unknown type", vehicle: types.Vehicle{Type: "HOVERCRAFT", Status: types.VehicleAvailable}},
		{name: "unknown status", vehicle: types.Vehicle{Type: types.VehicleVan, Status: "PARKED"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.Create(tc.vehicle)
			assert.ErrorIs(t, err, types.ErrInvalidStatus)
		})
	}
}

func TestVehicleSearchAcrossJoin(t *testing.T) {
	db := setupTestDB(t)
	store := NewVehicleStore(db)
	userID := mustUser(t, db, "owner@mill.com", types.RoleClient, "x")

	d1 := mustDriver(t, db, "Rina Wati", userID)
	d2 := mustDriver(t, db, "Joko Anwar", userID)
	mustVehicle(t, db, "B 1000 AB", d1, userID)
	mustVehicle(t, db, "B 2000 CD", d2, userID)

	t.Run("matches plate", func(t *testing.T) {
		vehicles, err := store.List(10, 0, "2000", "")
		require.NoError(t, err)
		require.Len(t, vehicles, 1)
		assert.Equal(t, "B 2000 CD", vehicles[0].PlateNumber)
	})

	t.Run("matches driver name", func(t *testing.T) {
		vehicles, err := store.List(10, 0, "Rina", "")
		require.NoError(t, err)
		require.Len(t, vehicles, 1)
		assert.Equal(t, "B 1000 AB", vehicles[0].PlateNumber)
	})

	t.Run("count mirrors list", func(t *testing.T) {
		total, err := store.Count("Rina", "")
		require.NoError(t, err)
		assert.Equal(t, 1, total)
	})
}

func TestVehicleUpdate(t *testing.T) {
	db := setupTestDB(t)
	store := NewVehicleStore(db)
	userID := mustUser(t, db, "owner@mill.com", types.RoleClient, "x")
	driverID := mustDriver(t, db, "Updater", userID)
	id := mustVehicle(t, db, "B 3000 EF", driverID, userID)

	capacity := 8.5
	status := types.VehicleMaintenance
	changed, err := store.Update(id, types.VehicleUpdate{Capacity: &capacity, Status: &status})
	require.NoError(t, err)
	assert.True(t, changed)

	v, _, err := store.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, 8.5, v.Capacity)
	assert.Equal(t, types.VehicleMaintenance, v.Status)
}

func TestVehicleDeleteReleasesDriver(t *testing.T) {
	db := setupTestDB(t)
	store := NewVehicleStore(db)
	userID := mustUser(t, db, "owner@mill.com", types.RoleClient, "x")
	driverID := mustDriver(t, db, "Released Driver", userID)
	id := mustVehicle(t, db, "B 4000 GH", driverID, userID)
	require.Equal(t, types.DriverOnTrip, driverStatus(t, db, driverID))

	deleted, err := store.Delete(id)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, types.DriverAvailable, driverStatus(t, db, driverID))

	deleted, err = store.Delete(id)
	require.NoError(t, err)
	assert.False(t, deleted)
}
