package auth

import (
	"context"
	"testing"

	"github.com/erpsuite/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlacklistFactory_DisabledUsesMemory(t *testing.T) {
	bl, closeFn, err := NewBlacklistFactory(config.RedisConfig{Enabled: false}).Create(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &InMemoryTokenBlacklist{}, bl)
	assert.NoError(t, closeFn())
}

func TestBlacklistFactory_UnreachableRedis(t *testing.T) {
	cfg := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}

	bl, _, err := NewBlacklistFactory(cfg).Create(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &InMemoryTokenBlacklist{}, bl)

	_, _, err = NewBlacklistFactory(cfg, WithInMemoryFallback(false)).Create(context.Background())
	assert.Error(t, err)
}
