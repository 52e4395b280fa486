package client

import (
	"context"
	"time"
)

// User is the public user record returned by the server.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Website   string    `json:"website,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Registration is the body of a register call.
type Registration struct {
	Name     string `json:"name,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Website  string `json:"website,omitempty"`
	Password string `json:"password"`
}

type Client interface {
	Login(ctx context.Context, username string, password []byte) (string, error)
	Register(ctx context.Context, r Registration) (*User, error)
	Me(ctx context.Context, token string) (*User, error)
}
