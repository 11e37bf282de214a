package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	videoLikesKeyPrefix = "zyrok:video:likes:"
	followersKeyPrefix  = "zyrok:user:followers:"
	counterTTL          = 10 * time.Minute
)

// RedisCounterStore implements CounterStore backed by Redis.
type RedisCounterStore struct {
	client *redis.Client
}

// NewRedisCounterStore creates a new Redis-backed counter store.
func NewRedisCounterStore(address, password string, db int) (*RedisCounterStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCounterStore{client: client}, nil
}

func videoLikesKey(videoID uint) string {
	return videoLikesKeyPrefix + strconv.FormatUint(uint64(videoID), 10)
}

func followersKey(userID string) string {
	return followersKeyPrefix + userID
}

// GetVideoLikes returns the cached like count for a video.
func (s *RedisCounterStore) GetVideoLikes(ctx context.Context, videoID uint) (int64, bool, error) {
	return s.get(ctx, videoLikesKey(videoID))
}

// SetVideoLikes caches the like count for a video.
func (s *RedisCounterStore) SetVideoLikes(ctx context.Context, videoID uint, count int64) error {
	return s.set(ctx, videoLikesKey(videoID), count)
}

// GetFollowers returns the cached follower count for a user.
func (s *RedisCounterStore) GetFollowers(ctx context.Context, userID string) (int64, bool, error) {
	return s.get(ctx, followersKey(userID))
}

// SetFollowers caches the follower count for a user.
func (s *RedisCounterStore) SetFollowers(ctx context.Context, userID string, count int64) error {
	return s.set(ctx, followersKey(userID), count)
}

func (s *RedisCounterStore) get(ctx context.Context, key string) (int64, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse counter %s: %w", key, err)
	}
	return count, true, nil
}

func (s *RedisCounterStore) set(ctx context.Context, key string, count int64) error {
	if err := s.client.Set(ctx, key, count, counterTTL).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Close releases the Redis connection.
func (s *RedisCounterStore) Close() error {
	return s.client.Close()
}

var _ CounterStore = (*RedisCounterStore)(nil)
