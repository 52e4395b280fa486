package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/placeholder/internal/common"
)

// ErrNoBearerToken means the request carried no Authorization value, or one
// that does not use the Bearer scheme. The validator is not consulted.
var ErrNoBearerToken = errors.New("no bearer token")

// TokenValidator resolves a token string into a principal.
type TokenValidator interface {
	Validate(token string, now time.Time) (Principal, error)
}

// BearerToken strips the case-sensitive "Bearer " prefix from an
// Authorization value.
func BearerToken(header string) (string, bool) {
	return strings.CutPrefix(header, common.BearerPrefix)
}

// Authenticate resolves the Authorization value of one request. On success
// the returned context carries the principal. On failure ctx is returned
// unchanged along with the reason, and the caller proceeds anonymously.
func Authenticate(ctx context.Context, v TokenValidator, header string, now time.Time) (context.Context, error) {
	token, ok := BearerToken(header)
	if !ok {
		return ctx, ErrNoBearerToken
	}

	p, err := v.Validate(token, now)
	if err != nil {
		return ctx, err
	}
	return WithPrincipal(ctx, p), nil
}
