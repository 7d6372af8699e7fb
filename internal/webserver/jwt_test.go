package webserver

import (
	"testing"
	"time"

	"github.com/campusworks/campusmarket/internal/domain"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseToken(t *testing.T, secret, raw string) *APIClaims {
	t.Helper()
	claims := &APIClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	return claims
}

func TestIssueTokenRoundTrip(t *testing.T) {
	user := &domain.User{ID: 42, Email: "buyer@campus.com", Role: domain.RoleUser}

	raw, err := IssueToken("test-secret", user)
	require.NoError(t, err)

	claims := parseToken(t, "test-secret", raw)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)
	assert.Equal(t, "buyer@campus.com", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestIssueTokenWrongSecret(t *testing.T) {
	user := &domain.User{ID: 7, Email: "x@campus.com", Role: domain.RoleAdmin}

	raw, err := IssueToken("right-secret", user)
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(raw, &APIClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte("wrong-secret"), nil
	})
	assert.Error(t, err)
}
