package domain

import "errors"

// ErrUnknownClient rejects an order naming a client the submitting user has
// never added to their list.
var ErrUnknownClient = errors.New("client is not on the submitting user's client list")

// Client is one row of the clients table. Each client row is owned by the
// user that created it, but admin tooling may manage rows for any user; no
// referential integrity links Client.User to the users table.
type Client struct {
	User     string `json:"user"`
	Name     string `json:"client"`
	OpenDate string `json:"open_date,omitempty"`
}
