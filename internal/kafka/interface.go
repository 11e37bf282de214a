package kafka

import "context"

// EngagementEvent is an engagement change fanned out for downstream
// consumers (analytics, notification pipelines).
type EngagementEvent struct {
	Type       string `json:"type"` // "comment_created" | "like_toggled" | "follow_toggled"
	UserID     string `json:"user_id"`
	VideoID    string `json:"video_id,omitempty"`
	CommentID  string `json:"comment_id,omitempty"`
	TargetUser string `json:"target_user,omitempty"`
	Active     bool   `json:"active"` // post-toggle state for toggles
	Timestamp  int64  `json:"timestamp"`
}

// Event types
const (
	EventCommentCreated = "comment_created"
	EventLikeToggled    = "like_toggled"
	EventFollowToggled  = "follow_toggled"
)

// EngagementEventProducer publishes engagement events. Implementations
// may be nil-checked by callers; the service runs without Kafka.
type EngagementEventProducer interface {
	ProduceCommentCreated(ctx context.Context, userID, videoID, commentID string) error
	ProduceLikeToggled(ctx context.Context, userID, videoID, commentID string, liked bool) error
	ProduceFollowToggled(ctx context.Context, userID, targetUserID string, following bool) error
	Close() error
}
