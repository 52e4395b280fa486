// Package client is the CLI's view of the user service REST API.
//
// # Overview
//
// Client is the transport-agnostic contract (Login, Register, Me).
// HTTPClient implements it over net/http, sending the bearer token in the
// Authorization header and mapping response statuses to sentinel errors.
//
// # Error Handling
//
// Callers match ErrUnavailable, ErrUnauthorized, ErrInvalidCredentials,
// ErrRejected and ErrNotFound with errors.Is. ErrRejected carries the
// server's message.
package client
