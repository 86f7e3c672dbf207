package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func TestInspectTokenReadsExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	info, err := InspectToken(signed(t, jwt.RegisteredClaims{
		Subject:   "u-1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}))
	require.NoError(t, err)
	assert.Equal(t, "u-1", info.Subject)
	assert.True(t, info.ExpiresAt.Equal(exp))
	assert.False(t, info.Expired(time.Now()))
	assert.InDelta(t, time.Hour.Seconds(), info.TTL(time.Now(), 0).Seconds(), 5)
}

func TestInspectTokenExpired(t *testing.T) {
	info, err := InspectToken(signed(t, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}))
	require.NoError(t, err)
	assert.True(t, info.Expired(time.Now()))
	assert.Equal(t, time.Duration(0), info.TTL(time.Now(), time.Hour))
}

func TestInspectOpaqueToken(t *testing.T) {
	_, err := InspectToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrOpaqueToken)

	var info TokenInfo
	assert.False(t, info.Expired(time.Now()))
	assert.Equal(t, time.Minute, info.TTL(time.Now(), time.Minute))
}
