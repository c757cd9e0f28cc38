package api

import (
	"errors"

	"github.com/mgufindo/ffb-swt/pkg/types"
)

// FetchDrivers returns one page of drivers matching the search term, scoped
// to ownerID when it is non-empty.
func (c *Client) FetchDrivers(page, pageSize int, search, ownerID string) (Page[types.Driver], error) {
	limit, offset := pageBounds(page, pageSize)
	drivers, err := c.drivers.List(limit, offset, search, ownerID, "")
	if err != nil {
		return Page[types.Driver]{}, c.fail(err, "failed to fetch drivers")
	}
	total, err := c.drivers.Count(search, ownerID)
	if err != nil {
		return Page[types.Driver]{}, c.fail(err, "failed to fetch drivers")
	}
	return Page[types.Driver]{Data: drivers, Total: total}, nil
}

// FetchDriver returns a single driver by id.
func (c *Client) FetchDriver(id string) (types.Driver, error) {
	d, found, err := c.drivers.GetByID(id)
	if err != nil {
		return types.Driver{}, c.fail(err, "failed to fetch driver")
	}
	if !found {
		return types.Driver{}, errors.New("driver not found")
	}
	return d, nil
}

// AddDriver creates a driver and returns its generated id.
func (c *Client) AddDriver(d types.Driver) (string, error) {
	id, err := c.drivers.Create(d)
	if err != nil {
		return "", c.fail(err, "failed to create driver")
	}
	return id, nil
}

// ModifyDriver applies a partial update to a driver.
func (c *Client) ModifyDriver(id string, u types.DriverUpdate) error {
	updated, err := c.drivers.Update(id, u)
	if err != nil {
		return c.fail(err, "failed to update driver")
	}
	if !updated {
		return errors.New("driver not found")
	}
	return nil
}

// RemoveDriver deletes a driver by id.
func (c *Client) RemoveDriver(id string) error {
	deleted, err := c.drivers.Delete(id)
	if err != nil {
		return c.fail(err, "failed to delete driver")
	}
	if !deleted {
		return errors.New("driver not found")
	}
	return nil
}
