package api

import (
	"errors"

	"github.com/mgufindo/ffb-swt/pkg/types"
)

// FetchVehicles returns one page of vehicles with their driver and owner
// hydrated, matching the search term across plate number, driver name and
// driver phone.
func (c *Client) FetchVehicles(page, pageSize int, search, ownerID string) (Page[types.Vehicle], error) {
	limit, offset := pageBounds(page, pageSize)
	vehicles, err := c.vehicles.List(limit, offset, search, ownerID)
	if err != nil {
		return Page[types.Vehicle]{}, c.fail(err, "failed to fetch vehicles")
	}
	total, err := c.vehicles.Count(search, ownerID)
	if err != nil {
		return Page[types.Vehicle]{}, c.fail(err, "failed to fetch vehicles")
	}
	return Page[types.Vehicle]{Data: vehicles, Total: total}, nil
}

// FetchVehicle returns a single vehicle by id.
func (c *Client) FetchVehicle(id string) (types.Vehicle, error) {
	v, found, err := c.vehicles.GetByID(id)
	if err != nil {
		return types.Vehicle{}, c.fail(err, "failed to fetch vehicle")
	}
	if !found {
		return types.Vehicle{}, errors.New("vehicle not found")
	}
	return v, nil
}

// AddVehicle creates a vehicle and returns its generated id. The assigned
// driver is moved off the AVAILABLE pool as a side effect.
func (c *Client) AddVehicle(v types.Vehicle) (string, error) {
	id, err := c.vehicles.Create(v)
	if err != nil {
		return "", c.fail(err, "failed to create vehicle")
	}
	return id, nil
}

// ModifyVehicle applies a partial update to a vehicle.
func (c *Client) ModifyVehicle(id string, u types.VehicleUpdate) error {
	updated, err := c.vehicles.Update(id, u)
	if err != nil {
		return c.fail(err, "failed to update vehicle")
	}
	if !updated {
		return errors.New("vehicle not found")
	}
	return nil
}

// RemoveVehicle deletes a vehicle and releases its driver back to AVAILABLE.
func (c *Client) RemoveVehicle(id string) error {
	deleted, err := c.vehicles.Delete(id)
	if err != nil {
		return c.fail(err, "failed to delete vehicle")
	}
	if !deleted {
		return errors.New("vehicle not found")
	}
	return nil
}
