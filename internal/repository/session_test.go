package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/rocketscienceinc/bingo-backend/internal/bingo"
	"github.com/rocketscienceinc/bingo-backend/testing/suite"
)

func activeSnapshot() *bingo.Snapshot {
	engine := bingo.New(bingo.WithRange(1, 75))
	engine.StartGame()
	engine.CallNumber()
	engine.MarkCell(2, 2)

	return engine.Snapshot()
}

func testSessionRepository(ctx context.Context, t *testing.T, newRepo func() SessionRepository) {
	t.Helper()

	t.Run("CreateOrUpdate_Success", func(t *testing.T) {
		sessionRepo := newRepo()

		// When: CreateOrUpdate is called
		err := sessionRepo.CreateOrUpdate(ctx, "123", activeSnapshot())

		// Then: no error should be returned, and session is stored
		require.NoError(t, err)
	})

	t.Run("GetByID_Success", func(t *testing.T) {
		sessionRepo := newRepo()

		// Given: a stored session
		snapshot := activeSnapshot()
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, "123", snapshot))

		// When: GetByID is called with existing ID
		retrieved, err := sessionRepo.GetByID(ctx, "123")

		// Then: the retrieved snapshot should match the saved one
		require.NoError(t, err)
		assert.Equal(t, snapshot, retrieved)
	})

	t.Run("GetByID_Overwritten", func(t *testing.T) {
		sessionRepo := newRepo()

		first := activeSnapshot()
		second := bingo.New().Snapshot()
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, "123", first))
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, "123", second))

		retrieved, err := sessionRepo.GetByID(ctx, "123")

		require.NoError(t, err)
		assert.Equal(t, second.Card, retrieved.Card)
		assert.Equal(t, bingo.StateConfiguring, retrieved.State)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		sessionRepo := newRepo()

		// When: GetByID is called with non-existent ID
		retrieved, err := sessionRepo.GetByID(ctx, "9999999")

		// Then: an ErrSessionNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.Nil(t, retrieved)
	})

	t.Run("DeleteByID_Success", func(t *testing.T) {
		sessionRepo := newRepo()

		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, "123", activeSnapshot()))

		// When: DeleteByID is called with existing ID
		err := sessionRepo.DeleteByID(ctx, "123")

		// Then: no error should be returned and the session is gone
		require.NoError(t, err)

		_, err = sessionRepo.GetByID(ctx, "123")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		sessionRepo := newRepo()

		err := sessionRepo.DeleteByID(ctx, "9999999")

		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}

func TestMemorySessionRepository(t *testing.T) {
	testSessionRepository(context.Background(), t, func() SessionRepository {
		return NewMemorySessionRepository(16, time.Hour)
	})

	t.Run("Expired sessions are gone", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository(16, 20*time.Millisecond)
		ctx := context.Background()
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, "123", activeSnapshot()))

		require.Eventually(t, func() bool {
			_, err := sessionRepo.GetByID(ctx, "123")
			return err != nil
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("Least recently used session is evicted", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository(2, time.Hour)
		ctx := context.Background()
		for _, id := range []string{"a", "b", "c"} {
			require.NoError(t, sessionRepo.CreateOrUpdate(ctx, id, activeSnapshot()))
		}

		_, err := sessionRepo.GetByID(ctx, "a")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)

		_, err = sessionRepo.GetByID(ctx, "c")
		require.NoError(t, err)
	})
}

func TestRedisSessionRepository(t *testing.T) {
	ctx, st := suite.New(t)

	testSessionRepository(ctx, t, func() SessionRepository {
		require.NoError(t, st.Storage.FlushDB(ctx).Err())
		return NewSessionRepository(st.Storage, time.Hour)
	})

	t.Run("Session expires with its ttl", func(t *testing.T) {
		sessionRepo := NewSessionRepository(st.Storage, time.Minute)
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, "ttl", activeSnapshot()))

		ttl, err := st.Storage.TTL(ctx, sessionKeyPrefix+"ttl").Result()

		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Minute)
	})
}
