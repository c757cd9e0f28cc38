package api

import (
	"errors"

	"github.com/mgufindo/ffb-swt/pkg/types"
)

// Login checks the credentials and returns the matching user with the
// password hash stripped. Unknown emails and wrong passwords produce the
// same message so the caller cannot tell which part failed.
func (c *Client) Login(email, password string) (types.User, error) {
	u, err := c.users.Authenticate(email, password)
	if err != nil {
		c.log.WithError(err).WithField("email", email).Warn("login rejected")
		return types.User{}, errors.New("invalid email or password")
	}
	return u, nil
}

// FetchClients returns every client-role user, for owner pickers.
func (c *Client) FetchClients() ([]types.User, error) {
	users, err := c.users.Clients()
	if err != nil {
		return nil, c.fail(err, "failed to fetch users")
	}
	return users, nil
}

// Register creates a user account and returns its generated id.
func (c *Client) Register(u types.User) (string, error) {
	id, err := c.users.Create(u)
	if err != nil {
		return "", c.fail(err, "failed to create user")
	}
	return id, nil
}
