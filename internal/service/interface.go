package service

import (
	"context"
	"io"

	"github.com/SKT-TRTR/zyrok-mobile-app/internal/domain"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/hub"
)

// RealtimeService handles inbound WebSocket events. One connection's
// events arrive in order; events from different connections run
// concurrently.
type RealtimeService interface {
	HandleJoinVideo(ctx context.Context, c *hub.Client, videoID string) error
	HandleLeaveVideo(ctx context.Context, c *hub.Client, videoID string) error
	HandleNewComment(ctx context.Context, c *hub.Client, videoID, content string) error
	HandleToggleLike(ctx context.Context, c *hub.Client, videoID, commentID string) error
	HandleToggleFollow(ctx context.Context, c *hub.Client, targetUserID string) error
	HandleTyping(ctx context.Context, c *hub.Client, videoID string, isTyping bool) error
	HandleDisconnect(ctx context.Context, c *hub.Client) error
}

// EngagementService owns comments and likes, and the post-write counter
// reads that broadcasts and REST responses are built from.
type EngagementService interface {
	CreateComment(ctx context.Context, userID string, videoID uint, content string, parentID *uint) (*domain.Comment, error)
	Comments(ctx context.Context, videoID uint, offset, limit int) ([]*domain.Comment, error)
	// ToggleVideoLike flips the like and returns the post-write state and
	// the re-read aggregate count.
	ToggleVideoLike(ctx context.Context, userID string, videoID uint) (liked bool, likesCount int64, err error)
	ToggleCommentLike(ctx context.Context, userID string, commentID uint) (liked bool, err error)
	VideoLikesCount(ctx context.Context, videoID uint) (int64, error)
}

// SocialService owns the follow graph and follower counters.
type SocialService interface {
	ToggleFollow(ctx context.Context, followerID, followingID string) (following bool, err error)
	FollowersCount(ctx context.Context, userID string) (int64, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	Followers(ctx context.Context, userID string, offset, limit int) ([]*domain.User, error)
	Following(ctx context.Context, userID string, offset, limit int) ([]*domain.User, error)
	SearchUsers(ctx context.Context, query string, limit int) ([]*domain.User, error)
}

// UploadInput carries video metadata supplied alongside the file.
type UploadInput struct {
	Title       string
	Description string
	SoundName   string
	SoundURL    string
	MusicID     string
	Tags        []string
	Duration    int
}

// VideoService owns the feed, video lifecycle, and media uploads.
type VideoService interface {
	Feed(ctx context.Context, viewerID string, offset, limit int) ([]*domain.Video, error)
	Get(ctx context.Context, id uint) (*domain.Video, error)
	Upload(ctx context.Context, userID string, in UploadInput, file io.Reader, size int64, contentType string) (*domain.Video, error)
	Delete(ctx context.Context, id uint, userID string) error
	ByUser(ctx context.Context, userID string, offset, limit int) ([]*domain.Video, error)
	Search(ctx context.Context, query string, limit int) ([]*domain.Video, error)
	Music(ctx context.Context, query string, offset, limit int) ([]*domain.Music, error)
}
