package providers

import (
	"context"
	"errors"
)

// ErrInvalidToken is returned for tokens that do not identify a user.
var ErrInvalidToken = errors.New("invalid token")

// AuthProvider verifies the token a client presents when connecting.
type AuthProvider interface {
	VerifyToken(ctx context.Context, idToken string) (*TokenClaims, error)
}

type TokenClaims struct {
	UID string `json:"uid"`
}

var _ AuthProvider = StaticAuthProvider{}

// StaticAuthProvider maps fixed tokens to user IDs. Used for local play and tests.
type StaticAuthProvider map[string]string

func (p StaticAuthProvider) VerifyToken(ctx context.Context, idToken string) (*TokenClaims, error) {
	uid, ok := p[idToken]
	if !ok {
		return nil, ErrInvalidToken
	}
	return &TokenClaims{UID: uid}, nil
}
