package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/SKT-TRTR/zyrok-mobile-app/internal/middleware"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/service"
	pkglog "github.com/SKT-TRTR/zyrok-mobile-app/pkg/log"
	"github.com/SKT-TRTR/zyrok-mobile-app/pkg/response"
)

// EngagementHandler serves comments and likes over REST. The WebSocket
// path is the primary write path; these endpoints back clients that
// cannot hold a socket open.
type EngagementHandler struct {
	engagement service.EngagementService
}

func NewEngagementHandler(engagement service.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagement: engagement}
}

func (h *EngagementHandler) Comments(c *gin.Context) {
	videoID, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid video id")
		return
	}
	offset, limit := pagination(c)
	comments, err := h.engagement.Comments(c.Request.Context(), videoID, offset, limit)
	if err != nil {
		pkglog.Ctx(c.Request.Context()).Error().Err(err).Uint(pkglog.FieldVideoID, videoID).Msg("failed to load comments")
		response.InternalError(c, "failed to load comments")
		return
	}
	response.Paged(c, comments, offset, limit)
}

type createCommentRequest struct {
	Content  string `json:"content" binding:"required"`
	ParentID *uint  `json:"parent_id"`
}

func (h *EngagementHandler) CreateComment(c *gin.Context) {
	videoID, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid video id")
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "content is required")
		return
	}

	comment, err := h.engagement.CreateComment(c.Request.Context(), middleware.UserID(c), videoID, req.Content, req.ParentID)
	if err != nil {
		if errors.Is(err, service.ErrEmptyContent) {
			response.BadRequest(c, "content is required")
			return
		}
		pkglog.Ctx(c.Request.Context()).Error().Err(err).Uint(pkglog.FieldVideoID, videoID).Msg("failed to create comment")
		response.InternalError(c, "failed to create comment")
		return
	}
	response.Created(c, comment)
}

// ToggleVideoLike flips the caller's like and returns the post-write
// state with the re-read count.
func (h *EngagementHandler) ToggleVideoLike(c *gin.Context) {
	videoID, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid video id")
		return
	}

	liked, count, err := h.engagement.ToggleVideoLike(c.Request.Context(), middleware.UserID(c), videoID)
	if err != nil {
		pkglog.Ctx(c.Request.Context()).Error().Err(err).Uint(pkglog.FieldVideoID, videoID).Msg("failed to toggle like")
		response.InternalError(c, "failed to toggle like")
		return
	}
	response.Success(c, gin.H{"is_liked": liked, "likes_count": count})
}

func (h *EngagementHandler) ToggleCommentLike(c *gin.Context) {
	commentID, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid comment id")
		return
	}

	liked, err := h.engagement.ToggleCommentLike(c.Request.Context(), middleware.UserID(c), commentID)
	if err != nil {
		pkglog.Ctx(c.Request.Context()).Error().Err(err).Uint(pkglog.FieldCommentID, commentID).Msg("failed to toggle comment like")
		response.InternalError(c, "failed to toggle like")
		return
	}
	response.Success(c, gin.H{"is_liked": liked})
}

func (h *EngagementHandler) VideoLikes(c *gin.Context) {
	videoID, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid video id")
		return
	}
	count, err := h.engagement.VideoLikesCount(c.Request.Context(), videoID)
	if err != nil {
		pkglog.Ctx(c.Request.Context()).Error().Err(err).Uint(pkglog.FieldVideoID, videoID).Msg("failed to read likes count")
		response.InternalError(c, "failed to read likes count")
		return
	}
	response.Success(c, gin.H{"likes_count": count})
}
