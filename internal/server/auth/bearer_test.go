package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/placeholder/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingValidator struct {
	calls int
	got   string
	p     Principal
	err   error
}

func (v *countingValidator) Validate(token string, now time.Time) (Principal, error) {
	v.calls++
	v.got = token
	return v.p, v.err
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"Bearer ", "", true},
		{"Bearer  abc", " abc", true},
		{"bearer abc", "", false},
		{"Bearerabc", "", false},
		{"Basic xyz", "", false},
		{"InvalidFormat", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			token, ok := BearerToken(tt.header)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.token, token)
			}
		})
	}
}

func TestAuthenticate_NonBearerSkipsValidator(t *testing.T) {
	for _, h := range []string{"", "Basic xyz", "InvalidFormat", "bearer abc"} {
		v := &countingValidator{p: Principal{Username: "alice"}}
		ctx, err := Authenticate(context.Background(), v, h, time.UnixMilli(0))

		assert.ErrorIs(t, err, ErrNoBearerToken, h)
		assert.Zero(t, v.calls, h)
		_, ok := PrincipalFromContext(ctx)
		assert.False(t, ok, h)
	}
}

func TestAuthenticate_Valid(t *testing.T) {
	v := &countingValidator{p: Principal{Username: "alice"}}
	ctx, err := Authenticate(context.Background(), v, "Bearer tok.en.sig", time.UnixMilli(0))
	require.NoError(t, err)
	assert.Equal(t, "tok.en.sig", v.got)

	p, ok := PrincipalFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "alice", p.Username)
}

func TestAuthenticate_InvalidForwardsReason(t *testing.T) {
	for _, want := range []error{common.ErrMalformedToken, common.ErrBadSignature, common.ErrTokenExpired} {
		v := &countingValidator{err: want}
		ctx, err := Authenticate(context.Background(), v, "Bearer x", time.UnixMilli(0))
		assert.True(t, errors.Is(err, want))
		assert.Equal(t, 1, v.calls)
		_, ok := PrincipalFromContext(ctx)
		assert.False(t, ok)
	}
}

func TestAuthenticate_WithRealService(t *testing.T) {
	s := newTestService(t, testSecret, time.Hour)
	tok, err := s.Issue(Principal{Username: "alice"}, at(1_000_000))
	require.NoError(t, err)

	ctx, err := Authenticate(context.Background(), s, "Bearer "+tok, at(1_000_000))
	require.NoError(t, err)
	p, ok := PrincipalFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "alice", p.Username)

	_, err = Authenticate(context.Background(), s, "Bearer "+tok, at(1_000_000+3_600_001))
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}
