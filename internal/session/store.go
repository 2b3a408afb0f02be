package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// uiStateTTL bounds how long abandoned interface state lingers.
const uiStateTTL = 24 * time.Hour

var ErrNoRedis = errors.New("session store requires redis")

// Store keeps per-user session data in redis: a durable snapshot under
// session:user:{id} and ephemeral UI state under session:ui:{id}.
type Store struct {
	redis *redis.Client
}

func NewStore(redisClient *redis.Client) *Store {
	return &Store{redis: redisClient}
}

func snapshotKey(userID string) string { return "session:user:" + userID }
func uiStateKey(userID string) string  { return "session:ui:" + userID }

func (s *Store) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	if s.redis == nil {
		return ErrNoRedis
	}
	snap.SavedAt = time.Now().UTC()
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, snapshotKey(snap.UserID), payload, 0).Err()
}

// LoadSnapshot returns the cached snapshot, or ok=false when none exists.
func (s *Store) LoadSnapshot(ctx context.Context, userID string) (Snapshot, bool, error) {
	if s.redis == nil {
		return Snapshot{}, false, ErrNoRedis
	}
	payload, err := s.redis.Get(ctx, snapshotKey(userID)).Bytes()
	if err == redis.Nil {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, err
	}
	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return Snapshot{}, false, err
	}
	return snap, true, nil
}

func (s *Store) ClearSnapshot(ctx context.Context, userID string) error {
	if s.redis == nil {
		return ErrNoRedis
	}
	return s.redis.Del(ctx, snapshotKey(userID)).Err()
}

func (s *Store) SaveUIState(ctx context.Context, userID string, state UIState) error {
	if s.redis == nil {
		return ErrNoRedis
	}
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, uiStateKey(userID), payload, uiStateTTL).Err()
}

// LoadUIState returns the saved state, or the fixed defaults when nothing is
// stored or the TTL has lapsed.
func (s *Store) LoadUIState(ctx context.Context, userID string) (UIState, error) {
	if s.redis == nil {
		return UIState{}, ErrNoRedis
	}
	payload, err := s.redis.Get(ctx, uiStateKey(userID)).Bytes()
	if err == redis.Nil {
		return DefaultUIState(), nil
	}
	if err != nil {
		return UIState{}, err
	}
	var state UIState
	if err := json.Unmarshal(payload, &state); err != nil {
		return UIState{}, err
	}
	return state, nil
}
