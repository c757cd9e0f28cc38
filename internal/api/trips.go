package api

import (
	"errors"

	"github.com/mgufindo/ffb-swt/pkg/types"
)

// FetchTrips returns one page of trips with vehicle, driver, mills and
// collections hydrated.
func (c *Client) FetchTrips(page, pageSize int, search, ownerID string) (Page[types.Trip], error) {
	limit, offset := pageBounds(page, pageSize)
	trips, err := c.trips.List(limit, offset, search, ownerID)
	if err != nil {
		return Page[types.Trip]{}, c.fail(err, "failed to fetch trips")
	}
	total, err := c.trips.Count(search, ownerID)
	if err != nil {
		return Page[types.Trip]{}, c.fail(err, "failed to fetch trips")
	}
	return Page[types.Trip]{Data: trips, Total: total}, nil
}

// FetchTrip returns a single trip by id.
func (c *Client) FetchTrip(id string) (types.Trip, error) {
	t, found, err := c.trips.GetByID(id)
	if err != nil {
		return types.Trip{}, c.fail(err, "failed to fetch trip")
	}
	if !found {
		return types.Trip{}, errors.New("trip not found")
	}
	return t, nil
}

// FetchTripsByMill returns one page of the trips that visit the given mill,
// each hydrated with that mill only and its collections there.
func (c *Client) FetchTripsByMill(millID string, page, pageSize int) (Page[types.Trip], error) {
	limit, offset := pageBounds(page, pageSize)
	trips, err := c.trips.ByMill(millID, limit, offset)
	if err != nil {
		return Page[types.Trip]{}, c.fail(err, "failed to fetch trips")
	}
	total, err := c.trips.CountByMill(millID)
	if err != nil {
		return Page[types.Trip]{}, c.fail(err, "failed to fetch trips")
	}
	return Page[types.Trip]{Data: trips, Total: total}, nil
}

// AddTrip creates a trip along with its mill stops and collections, returning
// the generated trip id.
func (c *Client) AddTrip(t types.Trip) (string, error) {
	id, err := c.trips.Create(t)
	if err != nil {
		return "", c.fail(err, "failed to create trip")
	}
	return id, nil
}

// ModifyTrip applies a partial update to a trip. A status change also moves
// the trip's vehicle between IN_USE and AVAILABLE.
func (c *Client) ModifyTrip(id string, u types.TripUpdate) error {
	updated, err := c.trips.Update(id, u)
	if err != nil {
		return c.fail(err, "failed to update trip")
	}
	if !updated {
		return errors.New("trip not found")
	}
	return nil
}

// RemoveTrip deletes a trip together with its mill stops and collections.
func (c *Client) RemoveTrip(id string) error {
	deleted, err := c.trips.Delete(id)
	if err != nil {
		return c.fail(err, "failed to delete trip")
	}
	if !deleted {
		return errors.New("trip not found")
	}
	return nil
}
