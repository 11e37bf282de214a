package domain

// WebSocket event types from client.
const (
	EventJoinVideo    = "join-video"
	EventLeaveVideo   = "leave-video"
	EventNewComment   = "new-comment"
	EventToggleLike   = "toggle-like"
	EventToggleFollow = "toggle-follow"
	EventTyping       = "typing"
)

// WebSocket event types to client.
const (
	EventCommentAdded  = "comment-added"
	EventLikeUpdated   = "like-updated"
	EventFollowUpdated = "follow-updated"
	EventUserTyping    = "user-typing"
	EventError         = "error"
)

// BaseMessage carries the event tag shared by all inbound messages.
type BaseMessage struct {
	Type string `json:"type"`
}

// Client -> Server messages

// JoinVideoMessage subscribes the connection to a video's room.
type JoinVideoMessage struct {
	Type    string `json:"type"`
	VideoID string `json:"video_id"`
}

// LeaveVideoMessage unsubscribes the connection from a video's room.
type LeaveVideoMessage struct {
	Type    string `json:"type"`
	VideoID string `json:"video_id"`
}

// NewCommentMessage posts a comment on a video.
type NewCommentMessage struct {
	Type    string `json:"type"`
	VideoID string `json:"video_id"`
	Content string `json:"content"`
}

// ToggleLikeMessage flips the sender's like on a video or a comment.
type ToggleLikeMessage struct {
	Type      string `json:"type"`
	VideoID   string `json:"video_id,omitempty"`
	CommentID string `json:"comment_id,omitempty"`
}

// ToggleFollowMessage flips the sender's follow of another user.
type ToggleFollowMessage struct {
	Type   string `json:"type"`
	UserID string `json:"user_id"`
}

// TypingMessage signals the sender is composing a comment.
type TypingMessage struct {
	Type     string `json:"type"`
	VideoID  string `json:"video_id"`
	IsTyping bool   `json:"is_typing"`
}

// Server -> Client messages

// CommentAddedMessage fans a freshly persisted comment out to a room.
type CommentAddedMessage struct {
	Type    string   `json:"type"`
	Comment *Comment `json:"comment"`
}

// LikeUpdatedMessage carries the post-write like state of a video. The
// count is the value read back from the store after the toggle, never a
// locally computed delta.
type LikeUpdatedMessage struct {
	Type       string `json:"type"`
	VideoID    string `json:"video_id"`
	IsLiked    bool   `json:"is_liked"`
	LikesCount int64  `json:"likes_count"`
}

// FollowUpdatedMessage announces a follow toggle to every connection.
type FollowUpdatedMessage struct {
	Type        string `json:"type"`
	FollowerID  string `json:"follower_id"`
	FollowingID string `json:"following_id"`
	IsFollowing bool   `json:"is_following"`
}

// UserTypingMessage relays a typing indicator to the rest of a room.
type UserTypingMessage struct {
	Type     string `json:"type"`
	UserID   string `json:"user_id"`
	IsTyping bool   `json:"is_typing"`
}

// ErrorMessage is sent to a single connection when its own event failed.
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewErrorMessage creates an error message scoped to the sender.
func NewErrorMessage(message string) *ErrorMessage {
	return &ErrorMessage{Type: EventError, Message: message}
}
