package store

import "context"

// CounterStore caches denormalized counters in front of the database.
// The cache is refreshed with post-write reads, never incremented
// speculatively, so a hit can only ever return a value the database held
// at some point.
type CounterStore interface {
	// GetVideoLikes returns (count, true, nil) on hit and (0, false, nil)
	// on miss.
	GetVideoLikes(ctx context.Context, videoID uint) (int64, bool, error)
	SetVideoLikes(ctx context.Context, videoID uint, count int64) error

	GetFollowers(ctx context.Context, userID string) (int64, bool, error)
	SetFollowers(ctx context.Context, userID string, count int64) error

	Close() error
}
