package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/SKT-TRTR/zyrok-mobile-app/internal/domain"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/hub"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/repository"
	pkglog "github.com/SKT-TRTR/zyrok-mobile-app/pkg/log"
)

type realtimeService struct {
	hub        *hub.Hub
	engagement EngagementService
	social     SocialService
}

// NewRealtimeService wires the event handlers to the hub and the
// persistence-backed services.
func NewRealtimeService(h *hub.Hub, engagement EngagementService, social SocialService) RealtimeService {
	return &realtimeService{
		hub:        h,
		engagement: engagement,
		social:     social,
	}
}

func (s *realtimeService) HandleJoinVideo(ctx context.Context, c *hub.Client, videoID string) error {
	if videoID == "" {
		return nil
	}
	s.hub.JoinRoom(c, videoID)
	return nil
}

func (s *realtimeService) HandleLeaveVideo(ctx context.Context, c *hub.Client, videoID string) error {
	if videoID == "" {
		return nil
	}
	s.hub.LeaveRoom(c, videoID)
	return nil
}

func (s *realtimeService) HandleNewComment(ctx context.Context, c *hub.Client, videoID, content string) error {
	if c.UserID == "" {
		pkglog.Ctx(ctx).Debug().Str(pkglog.FieldClientID, c.ID).Msg("dropping comment from anonymous connection")
		return nil
	}
	id, ok := parseVideoID(videoID)
	if !ok {
		return c.SendMessage(domain.NewErrorMessage("Invalid video id"))
	}

	comment, err := s.engagement.CreateComment(ctx, c.UserID, id, content, nil)
	if err != nil {
		if errors.Is(err, ErrEmptyContent) {
			return nil
		}
		pkglog.Ctx(ctx).Error().Err(err).
			Str(pkglog.FieldUserID, c.UserID).
			Str(pkglog.FieldVideoID, videoID).
			Msg("failed to persist comment")
		return c.SendMessage(domain.NewErrorMessage("Failed to post comment"))
	}

	return s.hub.BroadcastToRoom(videoID, &domain.CommentAddedMessage{
		Type:    domain.EventCommentAdded,
		Comment: comment,
	}, "")
}

func (s *realtimeService) HandleToggleLike(ctx context.Context, c *hub.Client, videoID, commentID string) error {
	if c.UserID == "" {
		pkglog.Ctx(ctx).Debug().Str(pkglog.FieldClientID, c.ID).Msg("dropping like from anonymous connection")
		return nil
	}

	switch {
	case videoID != "":
		id, ok := parseVideoID(videoID)
		if !ok {
			return c.SendMessage(domain.NewErrorMessage("Invalid video id"))
		}
		liked, count, err := s.engagement.ToggleVideoLike(ctx, c.UserID, id)
		if err != nil {
			pkglog.Ctx(ctx).Error().Err(err).
				Str(pkglog.FieldUserID, c.UserID).
				Str(pkglog.FieldVideoID, videoID).
				Msg("failed to toggle video like")
			return c.SendMessage(domain.NewErrorMessage("Failed to update like"))
		}
		return s.hub.BroadcastToRoom(videoID, &domain.LikeUpdatedMessage{
			Type:       domain.EventLikeUpdated,
			VideoID:    videoID,
			IsLiked:    liked,
			LikesCount: count,
		}, "")

	case commentID != "":
		id, ok := parseVideoID(commentID)
		if !ok {
			return c.SendMessage(domain.NewErrorMessage("Invalid comment id"))
		}
		// Comment likes persist but do not fan out.
		if _, err := s.engagement.ToggleCommentLike(ctx, c.UserID, id); err != nil {
			pkglog.Ctx(ctx).Error().Err(err).
				Str(pkglog.FieldUserID, c.UserID).
				Str(pkglog.FieldCommentID, commentID).
				Msg("failed to toggle comment like")
			return c.SendMessage(domain.NewErrorMessage("Failed to update like"))
		}
		return nil

	default:
		return c.SendMessage(domain.NewErrorMessage("Like target missing"))
	}
}

func (s *realtimeService) HandleToggleFollow(ctx context.Context, c *hub.Client, targetUserID string) error {
	if c.UserID == "" {
		pkglog.Ctx(ctx).Debug().Str(pkglog.FieldClientID, c.ID).Msg("dropping follow from anonymous connection")
		return nil
	}
	if targetUserID == "" {
		return c.SendMessage(domain.NewErrorMessage("Follow target missing"))
	}

	following, err := s.social.ToggleFollow(ctx, c.UserID, targetUserID)
	if err != nil {
		if errors.Is(err, repository.ErrSelfFollow) {
			return c.SendMessage(domain.NewErrorMessage("Cannot follow yourself"))
		}
		pkglog.Ctx(ctx).Error().Err(err).
			Str(pkglog.FieldUserID, c.UserID).
			Str("target_user_id", targetUserID).
			Msg("failed to toggle follow")
		return c.SendMessage(domain.NewErrorMessage("Failed to update follow"))
	}

	// Follow changes are not scoped to a video, every connection learns.
	return s.hub.BroadcastAll(&domain.FollowUpdatedMessage{
		Type:        domain.EventFollowUpdated,
		FollowerID:  c.UserID,
		FollowingID: targetUserID,
		IsFollowing: following,
	})
}

func (s *realtimeService) HandleTyping(ctx context.Context, c *hub.Client, videoID string, isTyping bool) error {
	if c.UserID == "" || videoID == "" {
		return nil
	}
	return s.hub.BroadcastToRoom(videoID, &domain.UserTypingMessage{
		Type:     domain.EventUserTyping,
		UserID:   c.UserID,
		IsTyping: isTyping,
	}, c.ID)
}

func (s *realtimeService) HandleDisconnect(ctx context.Context, c *hub.Client) error {
	// Room membership is torn down by the hub on unregister, nothing to
	// persist here.
	pkglog.Ctx(ctx).Debug().Str(pkglog.FieldClientID, c.ID).Str(pkglog.FieldUserID, c.UserID).Msg("connection closed")
	return nil
}

func parseVideoID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
