package api

import (
	"errors"

	"github.com/mgufindo/ffb-swt/pkg/types"
)

// FetchMills returns one page of mills matching the search term.
func (c *Client) FetchMills(page, pageSize int, search, ownerID string) (Page[types.Mill], error) {
	limit, offset := pageBounds(page, pageSize)
	mills, err := c.mills.List(limit, offset, search, ownerID)
	if err != nil {
		return Page[types.Mill]{}, c.fail(err, "failed to fetch mills")
	}
	total, err := c.mills.Count(search, ownerID)
	if err != nil {
		return Page[types.Mill]{}, c.fail(err, "failed to fetch mills")
	}
	return Page[types.Mill]{Data: mills, Total: total}, nil
}

// FetchMill returns a single mill by id.
func (c *Client) FetchMill(id string) (types.Mill, error) {
	m, found, err := c.mills.GetByID(id)
	if err != nil {
		return types.Mill{}, c.fail(err, "failed to fetch mill")
	}
	if !found {
		return types.Mill{}, errors.New("mill not found")
	}
	return m, nil
}

// AddMill creates a mill and returns its generated id.
func (c *Client) AddMill(m types.Mill) (string, error) {
	id, err := c.mills.Create(m)
	if err != nil {
		return "", c.fail(err, "failed to create mill")
	}
	return id, nil
}

// ModifyMill applies a partial update to a mill.
func (c *Client) ModifyMill(id string, u types.MillUpdate) error {
	updated, err := c.mills.Update(id, u)
	if err != nil {
		return c.fail(err, "failed to update mill")
	}
	if !updated {
		return errors.New("mill not found")
	}
	return nil
}

// RemoveMill deletes a mill by id.
func (c *Client) RemoveMill(id string) error {
	deleted, err := c.mills.Delete(id)
	if err != nil {
		return c.fail(err, "failed to delete mill")
	}
	if !deleted {
		return errors.New("mill not found")
	}
	return nil
}
