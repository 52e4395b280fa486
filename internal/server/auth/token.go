// Package auth issues and validates the signed bearer tokens that carry an
// authenticated identity between requests, and defines the Principal that
// the authentication filter attaches to a request.
//
// Tokens are compact JWS strings (header.payload.signature, Base64url),
// signed with HMAC-SHA256. Nothing is stored server side: validity is
// derived from the signature and the embedded expiry on every call.
package auth

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/placeholder/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the shortest signing secret NewService accepts.
const MinSecretLength = 16

// ErrInvalidSettings is returned by NewService for unusable settings.
var ErrInvalidSettings = errors.New("invalid token settings")

// Settings is the token configuration, fixed for the life of the process.
type Settings struct {
	Secret []byte
	// TTL is how long a token stays valid after issuance. Zero means a token
	// is only valid at the exact millisecond it was issued.
	TTL time.Duration
}

// Service issues and validates tokens. It holds no mutable state and is
// safe for concurrent use.
type Service struct {
	key    []byte
	ttl    time.Duration
	method jwt.SigningMethod
	parser *jwt.Parser
}

// NewService checks s and builds a Service from it.
func NewService(s Settings) (*Service, error) {
	if len(s.Secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: secret must be at least %d bytes", ErrInvalidSettings, MinSecretLength)
	}
	if s.TTL < 0 {
		return nil, fmt.Errorf("%w: negative ttl %s", ErrInvalidSettings, s.TTL)
	}

	method := jwt.SigningMethodHS256

	return &Service{
		key:    bytes.Clone(s.Secret),
		ttl:    s.TTL,
		method: method,
		// Expiry is checked by Validate at millisecond precision against the
		// caller's clock, so the library's own claim checks are off.
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{method.Alg()}),
			jwt.WithoutClaimsValidation(),
			jwt.WithStrictDecoding(),
		),
	}, nil
}

// TTL reports the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue returns a token for p valid from now until now+TTL inclusive.
func (s *Service) Issue(p Principal, now time.Time) (string, error) {
	if p.Username == "" {
		return "", fmt.Errorf("%w: empty subject", common.ErrorValidation)
	}

	iat := MillisOf(now)
	ttl := s.ttl.Milliseconds()
	if iat > 0 && ttl > maxMillis-int64(iat) {
		return "", fmt.Errorf("%w: expiry out of range", common.ErrorValidation)
	}
	exp := iat + Millis(ttl)

	token := jwt.NewWithClaims(s.method, &Claims{
		Subject:   p.Username,
		IssuedAt:  &iat,
		ExpiresAt: &exp,
	})

	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate checks tokenString and returns the principal it was issued for.
//
// Errors, in check order:
//   - common.ErrMalformedToken: fewer than three segments, bad Base64url or
//     JSON in the header or payload
//   - common.ErrBadSignature: MAC mismatch, other key, other algorithm, or
//     any damage to the signature segment (everything after the second dot)
//   - common.ErrMalformedToken: signed payload lacks sub or exp
//   - common.ErrTokenExpired: now is after exp
func (s *Service) Validate(tokenString string, now time.Time) (Principal, error) {
	claims := &Claims{}

	if token, err := s.parser.ParseWithClaims(tokenString, claims, s.keyFunc); err != nil {
		return Principal{}, s.classify(tokenString, token, err)
	}

	if claims.Subject == "" || claims.ExpiresAt == nil {
		return Principal{}, common.ErrMalformedToken
	}
	if MillisOf(now) > *claims.ExpiresAt {
		return Principal{}, common.ErrTokenExpired
	}

	return Principal{Username: claims.Subject}, nil
}

func (s *Service) keyFunc(*jwt.Token) (any, error) {
	return s.key, nil
}

func (s *Service) classify(tokenString string, token *jwt.Token, err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return common.ErrBadSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		// Method is only set once header and payload decoded, so the
		// failure is in the signature segment.
		if token != nil && token.Method != nil {
			return common.ErrBadSignature
		}
		if s.signedPartIntact(tokenString) {
			return common.ErrBadSignature
		}
		return common.ErrMalformedToken
	default:
		return common.ErrMalformedToken
	}
}

// signedPartIntact reports whether the header and payload of tokenString
// decode on their own. A token whose signature segment picked up an extra
// dot fails the segment count check but is still a damaged signature.
func (s *Service) signedPartIntact(tokenString string) bool {
	parts := strings.SplitN(tokenString, ".", 3)
	if len(parts) != 3 {
		return false
	}
	_, _, err := s.parser.ParseUnverified(parts[0]+"."+parts[1]+".", &Claims{})
	return err == nil
}
