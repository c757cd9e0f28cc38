package api

import (
	"errors"

	"github.com/mgufindo/ffb-swt/pkg/types"
)

// FetchCollections returns one page of collection records, newest first.
func (c *Client) FetchCollections(page, pageSize int) (Page[types.Collection], error) {
	limit, offset := pageBounds(page, pageSize)
	records, err := c.collections.List(limit, offset)
	if err != nil {
		return Page[types.Collection]{}, c.fail(err, "failed to fetch collections")
	}
	total, err := c.collections.Count()
	if err != nil {
		return Page[types.Collection]{}, c.fail(err, "failed to fetch collections")
	}
	return Page[types.Collection]{Data: records, Total: total}, nil
}

// FetchCollection returns a single collection record by id.
func (c *Client) FetchCollection(id string) (types.Collection, error) {
	rec, found, err := c.collections.GetByID(id)
	if err != nil {
		return types.Collection{}, c.fail(err, "failed to fetch collection")
	}
	if !found {
		return types.Collection{}, errors.New("collection not found")
	}
	return rec, nil
}

// FetchCollectionsByMill returns one page of a mill's collection records.
func (c *Client) FetchCollectionsByMill(millID string, page, pageSize int) ([]types.Collection, error) {
	limit, offset := pageBounds(page, pageSize)
	records, err := c.collections.ByMill(millID, limit, offset)
	if err != nil {
		return nil, c.fail(err, "failed to fetch collections")
	}
	return records, nil
}

// FetchTodayCollections returns a mill's collection records dated today.
func (c *Client) FetchTodayCollections(millID string) ([]types.Collection, error) {
	records, err := c.collections.TodayByMill(millID)
	if err != nil {
		return nil, c.fail(err, "failed to fetch collections")
	}
	return records, nil
}

// AddCollection creates a collection record and returns its generated id.
func (c *Client) AddCollection(rec types.Collection) (string, error) {
	id, err := c.collections.Create(rec)
	if err != nil {
		return "", c.fail(err, "failed to create collection")
	}
	return id, nil
}

// AddMillProduction records a manual production entry for a mill: a
// COMPLETED collection stamped now, not tied to any trip.
func (c *Client) AddMillProduction(millID string, weight float64, userID string) (string, error) {
	id, err := c.collections.AddMillProduction(millID, weight, userID)
	if err != nil {
		return "", c.fail(err, "failed to record production")
	}
	return id, nil
}

// ModifyCollection applies a partial update to a collection record.
func (c *Client) ModifyCollection(id string, u types.CollectionUpdate) error {
	updated, err := c.collections.Update(id, u)
	if err != nil {
		return c.fail(err, "failed to update collection")
	}
	if !updated {
		return errors.New("collection not found")
	}
	return nil
}

// RemoveCollection deletes a collection record by id.
func (c *Client) RemoveCollection(id string) error {
	deleted, err := c.collections.Delete(id)
	if err != nil {
		return c.fail(err, "failed to delete collection")
	}
	if !deleted {
		return errors.New("collection not found")
	}
	return nil
}
