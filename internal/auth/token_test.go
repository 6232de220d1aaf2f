package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/volunteerhub/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 60)

	token, exp, err := tm.GenerateToken("user-123", domain.RoleOrganization)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, domain.RoleOrganization, claims.Role)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 60).GenerateToken("user-123", domain.RoleVolunteer)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 60).ParseToken(token)
	assert.Error(t, err)
}

func TestTokenGarbageRejected(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	_, err := tm.ParseToken("dev-token-user-123-1700000000000")
	assert.Error(t, err)
}

func TestTokenTTLFallback(t *testing.T) {
	tm := NewTokenManager("secret", 0)
	_, exp, err := tm.GenerateToken("user-123", domain.RoleVolunteer)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)
}
