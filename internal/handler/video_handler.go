package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SKT-TRTR/zyrok-mobile-app/internal/middleware"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/repository"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/service"
	pkglog "github.com/SKT-TRTR/zyrok-mobile-app/pkg/log"
	"github.com/SKT-TRTR/zyrok-mobile-app/pkg/response"
)

// maxUploadSize caps video uploads at 100 MiB.
const maxUploadSize = 100 << 20

// VideoHandler serves the feed, video CRUD and the music library.
type VideoHandler struct {
	videos service.VideoService
}

func NewVideoHandler(videos service.VideoService) *VideoHandler {
	return &VideoHandler{videos: videos}
}

// Feed returns the ranked video feed for the caller.
func (h *VideoHandler) Feed(c *gin.Context) {
	offset, limit := pagination(c)
	videos, err := h.videos.Feed(c.Request.Context(), middleware.UserID(c), offset, limit)
	if err != nil {
		pkglog.Ctx(c.Request.Context()).Error().Err(err).Msg("failed to load feed")
		response.InternalError(c, "failed to load feed")
		return
	}
	response.Paged(c, videos, offset, limit)
}

func (h *VideoHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid video id")
		return
	}
	video, err := h.videos.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "video not found")
			return
		}
		pkglog.Ctx(c.Request.Context()).Error().Err(err).Uint(pkglog.FieldVideoID, id).Msg("failed to load video")
		response.InternalError(c, "failed to load video")
		return
	}
	response.Success(c, video)
}

// Upload accepts a multipart form with the video file and its metadata.
func (h *VideoHandler) Upload(c *gin.Context) {
	userID := middleware.UserID(c)

	file, header, err := c.Request.FormFile("video")
	if err != nil {
		response.BadRequest(c, "missing video file")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		response.BadRequest(c, "video file too large")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "video/") {
		response.BadRequest(c, "unsupported content type")
		return
	}

	in := service.UploadInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		SoundName:   c.PostForm("sound_name"),
		SoundURL:    c.PostForm("sound_url"),
		MusicID:     c.PostForm("music_id"),
	}
	if raw := c.PostForm("duration"); raw != "" {
		duration, err := strconv.Atoi(raw)
		if err != nil || duration < 0 {
			response.BadRequest(c, "invalid duration")
			return
		}
		in.Duration = duration
	}
	if tags := c.PostForm("tags"); tags != "" {
		for _, t := range strings.Split(tags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				in.Tags = append(in.Tags, t)
			}
		}
	}
	if in.Title == "" {
		response.BadRequest(c, "title is required")
		return
	}

	video, err := h.videos.Upload(c.Request.Context(), userID, in, file, header.Size, contentType)
	if err != nil {
		pkglog.Ctx(c.Request.Context()).Error().Err(err).Str(pkglog.FieldUserID, userID).Msg("failed to upload video")
		response.InternalError(c, "failed to upload video")
		return
	}
	response.Created(c, video)
}

func (h *VideoHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid video id")
		return
	}

	err := h.videos.Delete(c.Request.Context(), id, middleware.UserID(c))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		response.NotFound(c, "video not found")
	case errors.Is(err, repository.ErrNotOwner):
		response.Forbidden(c, "not the video owner")
	case err != nil:
		pkglog.Ctx(c.Request.Context()).Error().Err(err).Uint(pkglog.FieldVideoID, id).Msg("failed to delete video")
		response.InternalError(c, "failed to delete video")
	default:
		response.Success(c, gin.H{"deleted": true})
	}
}

func (h *VideoHandler) ByUser(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		response.BadRequest(c, "invalid user id")
		return
	}
	offset, limit := pagination(c)
	videos, err := h.videos.ByUser(c.Request.Context(), userID, offset, limit)
	if err != nil {
		pkglog.Ctx(c.Request.Context()).Error().Err(err).Str(pkglog.FieldUserID, userID).Msg("failed to load user videos")
		response.InternalError(c, "failed to load videos")
		return
	}
	response.Paged(c, videos, offset, limit)
}

// Music lists or searches the music library.
func (h *VideoHandler) Music(c *gin.Context) {
	offset, limit := pagination(c)
	tracks, err := h.videos.Music(c.Request.Context(), c.Query("q"), offset, limit)
	if err != nil {
		pkglog.Ctx(c.Request.Context()).Error().Err(err).Msg("failed to load music library")
		response.InternalError(c, "failed to load music library")
		return
	}
	response.Paged(c, tracks, offset, limit)
}
