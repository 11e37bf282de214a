package repository

import (
	"context"

	"github.com/SKT-TRTR/zyrok-mobile-app/internal/domain"
)

// UserRepository persists user profiles.
type UserRepository interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	Upsert(ctx context.Context, user *domain.UserModel) error
	Search(ctx context.Context, query string, limit int) ([]*domain.User, error)
	// RecomputeStats recounts the denormalized follower/following/likes
	// counters on the users row from the relation tables.
	RecomputeStats(ctx context.Context, id string) error
}

// VideoRepository persists videos and their denormalized counters.
type VideoRepository interface {
	Get(ctx context.Context, id uint) (*domain.Video, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Video, error)
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]*domain.Video, error)
	Create(ctx context.Context, model *domain.VideoModel) (*domain.Video, error)
	Delete(ctx context.Context, id uint, userID string) error
	Search(ctx context.Context, query string, limit int) ([]*domain.Video, error)
	IncrementViews(ctx context.Context, id uint) error
	// RecomputeStats recounts likes_count and comments_count on the video
	// row from the likes and comments tables.
	RecomputeStats(ctx context.Context, id uint) error
	// GetLikesCount reads the persisted likes counter. Broadcast payloads
	// must use this post-write value, never a locally computed delta.
	GetLikesCount(ctx context.Context, id uint) (int64, error)
}

// CommentRepository persists comments.
type CommentRepository interface {
	Create(ctx context.Context, videoID uint, userID, content string, parentID *uint) (*domain.Comment, error)
	// LatestByVideo returns the most recent comment on a video with its
	// author preloaded, for fan-out right after a create.
	LatestByVideo(ctx context.Context, videoID uint) (*domain.Comment, error)
	ListByVideo(ctx context.Context, videoID uint, offset, limit int) ([]*domain.Comment, error)
}

// LikeRepository persists likes. Toggle flips the row for (user, target)
// atomically: present -> removed, absent -> created. Exactly one of
// videoID and commentID must be set.
type LikeRepository interface {
	Toggle(ctx context.Context, userID string, videoID, commentID *uint) (nowLiked bool, err error)
}

// FollowRepository persists the social graph.
type FollowRepository interface {
	// Toggle flips the (follower, following) row atomically and reports
	// the resulting state.
	Toggle(ctx context.Context, followerID, followingID string) (nowFollowing bool, err error)
	CountFollowers(ctx context.Context, userID string) (int64, error)
	CountFollowing(ctx context.Context, userID string) (int64, error)
	ListFollowers(ctx context.Context, userID string, offset, limit int) ([]*domain.User, error)
	ListFollowing(ctx context.Context, userID string, offset, limit int) ([]*domain.User, error)
}

// MusicRepository persists the music library.
type MusicRepository interface {
	List(ctx context.Context, offset, limit int) ([]*domain.Music, error)
	Search(ctx context.Context, query string, limit int) ([]*domain.Music, error)
	IncrementUsage(ctx context.Context, id string) error
}
