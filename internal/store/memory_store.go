package store

import (
	"context"
	"sync"
)

// MemoryCounterStore is an in-memory CounterStore. Suitable for
// single-instance deployments and tests.
type MemoryCounterStore struct {
	videoLikes map[uint]int64
	followers  map[string]int64
	mu         sync.RWMutex
}

// NewMemoryCounterStore creates a new in-memory counter store.
func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{
		videoLikes: make(map[uint]int64),
		followers:  make(map[string]int64),
	}
}

// GetVideoLikes returns the cached like count for a video.
func (s *MemoryCounterStore) GetVideoLikes(ctx context.Context, videoID uint) (int64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count, ok := s.videoLikes[videoID]
	return count, ok, nil
}

// SetVideoLikes caches the like count for a video.
func (s *MemoryCounterStore) SetVideoLikes(ctx context.Context, videoID uint, count int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videoLikes[videoID] = count
	return nil
}

// GetFollowers returns the cached follower count for a user.
func (s *MemoryCounterStore) GetFollowers(ctx context.Context, userID string) (int64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count, ok := s.followers[userID]
	return count, ok, nil
}

// SetFollowers caches the follower count for a user.
func (s *MemoryCounterStore) SetFollowers(ctx context.Context, userID string, count int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.followers[userID] = count
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryCounterStore) Close() error {
	return nil
}

var _ CounterStore = (*MemoryCounterStore)(nil)
