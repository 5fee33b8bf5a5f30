package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/rocketscienceinc/bingo-backend/internal/bingo"
)

type memorySession struct {
	cache *expirable.LRU[string, []byte]
}

// NewMemorySessionRepository - keeps at most capacity session snapshots in process.
// Entries expire ttl after their last write; the least recently used is evicted first.
func NewMemorySessionRepository(capacity int, ttl time.Duration) SessionRepository {
	return &memorySession{
		cache: expirable.NewLRU[string, []byte](capacity, nil, ttl),
	}
}

func (that *memorySession) CreateOrUpdate(_ context.Context, id string, snapshot *bingo.Snapshot) error {
	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	that.cache.Add(id, snapshotJSON)

	return nil
}

func (that *memorySession) GetByID(_ context.Context, id string) (*bingo.Snapshot, error) {
	snapshotJSON, ok := that.cache.Get(id)
	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	var snapshot bingo.Snapshot
	if err := json.Unmarshal(snapshotJSON, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &snapshot, nil
}

func (that *memorySession) DeleteByID(_ context.Context, id string) error {
	if !that.cache.Remove(id) {
		return apperror.ErrSessionNotFound
	}

	return nil
}
