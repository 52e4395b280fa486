// Package cli provides the command-line client for the user service.
//
// Commands:
//   - login: prompt for a password without echo, print the issued token
//   - register: create an account
//   - whoami: show the user a token belongs to
//
// NewRootCmd builds the cobra command tree; App holds the shared state the
// commands run against.
package cli
