// Package api is the thin facade the presentation layer consumes. Each
// function wraps one store call, translating any underlying error into a
// fixed human-readable message; the original detail is only logged.
package api

import (
	"database/sql"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/mgufindo/ffb-swt/internal/database"
)

// DefaultPageSize is used when a caller passes a non-positive page size.
const DefaultPageSize = 10

// Page is one page of a list result. Total is the filtered row count across
// all pages, so callers compute pages as ceil(Total / pageSize).
type Page[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

// Client bundles the entity stores behind the facade surface.
type Client struct {
	drivers     *database.DriverStore
	vehicles    *database.VehicleStore
	mills       *database.MillStore
	trips       *database.TripStore
	collections *database.CollectionStore
	users       *database.UserStore
	log         *logrus.Logger
}

// New returns a Client over the given open database handle.
func New(db *sql.DB, log *logrus.Logger) *Client {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		drivers:     database.NewDriverStore(db),
		vehicles:    database.NewVehicleStore(db),
		mills:       database.NewMillStore(db),
		trips:       database.NewTripStore(db),
		collections: database.NewCollectionStore(db),
		users:       database.NewUserStore(db),
		log:         log,
	}
}

// pageBounds normalizes 1-based paging input into a LIMIT/OFFSET pair.
func pageBounds(page, pageSize int) (limit, offset int) {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	return pageSize, (page - 1) * pageSize
}

// fail logs the underlying error and returns the fixed message callers see.
func (c *Client) fail(err error, msg string) error {
	c.log.WithError(err).Error(msg)
	return errors.New(msg)
}
