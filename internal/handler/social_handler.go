package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/SKT-TRTR/zyrok-mobile-app/internal/middleware"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/repository"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/service"
	pkglog "github.com/SKT-TRTR/zyrok-mobile-app/pkg/log"
	"github.com/SKT-TRTR/zyrok-mobile-app/pkg/response"
)

// SocialHandler serves profiles, the follow graph and search.
type SocialHandler struct {
	social service.SocialService
	videos service.VideoService
}

func NewSocialHandler(social service.SocialService, videos service.VideoService) *SocialHandler {
	return &SocialHandler{social: social, videos: videos}
}

func (h *SocialHandler) Profile(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		response.BadRequest(c, "invalid user id")
		return
	}
	user, err := h.social.Profile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		pkglog.Ctx(c.Request.Context()).Error().Err(err).Str(pkglog.FieldUserID, userID).Msg("failed to load profile")
		response.InternalError(c, "failed to load profile")
		return
	}
	response.Success(c, user)
}

func (h *SocialHandler) ToggleFollow(c *gin.Context) {
	targetID := c.Param("id")
	if targetID == "" {
		response.BadRequest(c, "invalid user id")
		return
	}

	following, err := h.social.ToggleFollow(c.Request.Context(), middleware.UserID(c), targetID)
	if err != nil {
		if errors.Is(err, repository.ErrSelfFollow) {
			response.BadRequest(c, "cannot follow yourself")
			return
		}
		pkglog.Ctx(c.Request.Context()).Error().Err(err).Str(pkglog.FieldUserID, targetID).Msg("failed to toggle follow")
		response.InternalError(c, "failed to toggle follow")
		return
	}
	response.Success(c, gin.H{"is_following": following})
}

func (h *SocialHandler) Followers(c *gin.Context) {
	userID := c.Param("id")
	offset, limit := pagination(c)
	users, err := h.social.Followers(c.Request.Context(), userID, offset, limit)
	if err != nil {
		pkglog.Ctx(c.Request.Context()).Error().Err(err).Str(pkglog.FieldUserID, userID).Msg("failed to load followers")
		response.InternalError(c, "failed to load followers")
		return
	}
	response.Paged(c, users, offset, limit)
}

func (h *SocialHandler) Following(c *gin.Context) {
	userID := c.Param("id")
	offset, limit := pagination(c)
	users, err := h.social.Following(c.Request.Context(), userID, offset, limit)
	if err != nil {
		pkglog.Ctx(c.Request.Context()).Error().Err(err).Str(pkglog.FieldUserID, userID).Msg("failed to load following")
		response.InternalError(c, "failed to load following")
		return
	}
	response.Paged(c, users, offset, limit)
}

func (h *SocialHandler) FollowersCount(c *gin.Context) {
	userID := c.Param("id")
	count, err := h.social.FollowersCount(c.Request.Context(), userID)
	if err != nil {
		pkglog.Ctx(c.Request.Context()).Error().Err(err).Str(pkglog.FieldUserID, userID).Msg("failed to read followers count")
		response.InternalError(c, "failed to read followers count")
		return
	}
	response.Success(c, gin.H{"followers_count": count})
}

// SearchUsers looks up users matching q.
func (h *SocialHandler) SearchUsers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.BadRequest(c, "q is required")
		return
	}
	_, limit := pagination(c)

	users, err := h.social.SearchUsers(c.Request.Context(), query, limit)
	if err != nil {
		pkglog.Ctx(c.Request.Context()).Error().Err(err).Msg("user search failed")
		response.InternalError(c, "search failed")
		return
	}
	response.Success(c, gin.H{"users": users})
}

// SearchVideos looks up videos matching q.
func (h *SocialHandler) SearchVideos(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.BadRequest(c, "q is required")
		return
	}
	_, limit := pagination(c)

	videos, err := h.videos.Search(c.Request.Context(), query, limit)
	if err != nil {
		pkglog.Ctx(c.Request.Context()).Error().Err(err).Msg("video search failed")
		response.InternalError(c, "search failed")
		return
	}
	response.Success(c, gin.H{"videos": videos})
}

// Search looks up videos and users matching q.
func (h *SocialHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.BadRequest(c, "q is required")
		return
	}
	_, limit := pagination(c)

	videos, err := h.videos.Search(c.Request.Context(), query, limit)
	if err != nil {
		pkglog.Ctx(c.Request.Context()).Error().Err(err).Msg("video search failed")
		response.InternalError(c, "search failed")
		return
	}
	users, err := h.social.SearchUsers(c.Request.Context(), query, limit)
	if err != nil {
		pkglog.Ctx(c.Request.Context()).Error().Err(err).Msg("user search failed")
		response.InternalError(c, "search failed")
		return
	}
	response.Success(c, gin.H{"videos": videos, "users": users})
}
