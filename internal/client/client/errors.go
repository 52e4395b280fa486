package client

import "errors"

var (
	ErrUnavailable        = errors.New("server unavailable")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrRejected           = errors.New("request rejected")
	ErrNotFound           = errors.New("not found")
)
