package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// ErrOpaqueToken is returned when a token is not a JWT and carries no readable claims.
var ErrOpaqueToken = errors.New("token carries no readable claims")

// TokenInfo is what the portal can learn from a bearer token without the signing key.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
}

// HasExpiry reports whether the token declared an expiry.
func (t TokenInfo) HasExpiry() bool {
	return !t.ExpiresAt.IsZero()
}

// Expired reports whether the declared expiry is before now.
func (t TokenInfo) Expired(now time.Time) bool {
	return t.HasExpiry() && !now.Before(t.ExpiresAt)
}

// TTL returns the remaining lifetime, or fallback when the token declares none.
func (t TokenInfo) TTL(now time.Time, fallback time.Duration) time.Duration {
	if !t.HasExpiry() {
		return fallback
	}
	if remaining := t.ExpiresAt.Sub(now); remaining > 0 {
		return remaining
	}
	return 0
}

// InspectToken reads the registered claims of a JWT bearer token. The signature
// is not verified: the backend owns the key and stays the authority.
func InspectToken(tokenStr string) (TokenInfo, error) {
	parser := jwt.NewParser()
	claims := &jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(tokenStr, claims); err != nil {
		return TokenInfo{}, ErrOpaqueToken
	}

	info := TokenInfo{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
