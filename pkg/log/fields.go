package log

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Actor (matches internal/middleware/auth.go keys)
	FieldUserID   = "user_id"
	FieldUsername = "username"

	// Realtime
	FieldClientID = "client_id"
	FieldRoomID   = "room_id"
	FieldEvent    = "event"

	// Domain
	FieldVideoID   = "video_id"
	FieldCommentID = "comment_id"

	// Service
	FieldService = "service"
)
