package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist_Revoke(t *testing.T) {
	ctx := context.Background()
	b := NewInMemoryTokenBlacklist()

	revoked, err := b.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, b.Revoke(ctx, "jti-1", time.Minute))
	revoked, err = b.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, _ = b.IsRevoked(ctx, "jti-2")
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_EntriesExpire(t *testing.T) {
	ctx := context.Background()
	b := NewInMemoryTokenBlacklist()
	now := time.Now()
	b.now = func() time.Time { return now }

	require.NoError(t, b.Revoke(ctx, "jti", time.Minute))
	b.now = func() time.Time { return now.Add(2 * time.Minute) }

	revoked, err := b.IsRevoked(ctx, "jti")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Empty(t, b.jtis)
}

func TestInMemoryTokenBlacklist_RevokeUser(t *testing.T) {
	ctx := context.Background()
	b := NewInMemoryTokenBlacklist()
	now := time.Now()
	b.now = func() time.Time { return now }

	require.NoError(t, b.RevokeUser(ctx, "user-1", time.Hour))

	revoked, err := b.IsUserRevoked(ctx, "user-1", now.Add(-time.Second))
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = b.IsUserRevoked(ctx, "user-1", now.Add(10*time.Millisecond))
	require.NoError(t, err)
	assert.False(t, revoked)

	revoked, _ = b.IsUserRevoked(ctx, "user-2", now.Add(-time.Hour))
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_WithIssuedTokens(t *testing.T) {
	ctx := context.Background()
	svc := NewJWTService(testJWTConfig())
	b := NewInMemoryTokenBlacklist()
	base := time.Now()

	svc.now = func() time.Time { return base }
	old, err := svc.GenerateTokenPair(testSubject())
	require.NoError(t, err)
	oldClaims, err := svc.ValidateAccessToken(old.AccessToken)
	require.NoError(t, err)

	b.now = func() time.Time { return base.Add(100 * time.Millisecond) }
	require.NoError(t, b.RevokeUser(ctx, oldClaims.UserID, time.Hour))

	svc.now = func() time.Time { return base.Add(200 * time.Millisecond) }
	fresh, err := svc.GenerateTokenPair(testSubject())
	require.NoError(t, err)
	freshClaims, err := svc.ValidateAccessToken(fresh.AccessToken)
	require.NoError(t, err)

	revoked, _ := b.IsUserRevoked(ctx, oldClaims.UserID, oldClaims.IssuedAtTime())
	assert.True(t, revoked)
	revoked, _ = b.IsUserRevoked(ctx, oldClaims.UserID, freshClaims.IssuedAtTime())
	assert.False(t, revoked)
}
