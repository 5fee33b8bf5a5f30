package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/bingo-backend/internal/config"
)

func TestNewSessionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		conf := &config.Config{
			Storage: config.StorageMemory,
			Session: config.Session{TTL: time.Hour, Capacity: 8},
		}

		repo, closeStorage, err := newSessionRepository(ctx, conf)
		require.NoError(t, err)
		assert.NotNil(t, repo)
		assert.NoError(t, closeStorage())
	})

	t.Run("redis without host", func(t *testing.T) {
		conf := &config.Config{Storage: config.StorageRedis}

		_, _, err := newSessionRepository(ctx, conf)
		assert.ErrorIs(t, err, ErrAddrNotFound)
	})

	t.Run("unknown storage", func(t *testing.T) {
		conf := &config.Config{Storage: "sqlite"}

		_, _, err := newSessionRepository(ctx, conf)
		assert.ErrorIs(t, err, ErrUnknownStorage)
	})
}
