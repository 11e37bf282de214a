package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/SKT-TRTR/zyrok-mobile-app/internal/domain"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/kafka"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/repository"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/store"
	pkglog "github.com/SKT-TRTR/zyrok-mobile-app/pkg/log"
)

var ErrEmptyContent = errors.New("comment content is empty")

type engagementService struct {
	videos   repository.VideoRepository
	comments repository.CommentRepository
	likes    repository.LikeRepository
	counters store.CounterStore
	producer kafka.EngagementEventProducer
	group    singleflight.Group
}

// NewEngagementService builds the comment/like service. producer may be
// nil when event streaming is disabled.
func NewEngagementService(
	videos repository.VideoRepository,
	comments repository.CommentRepository,
	likes repository.LikeRepository,
	counters store.CounterStore,
	producer kafka.EngagementEventProducer,
) EngagementService {
	return &engagementService{
		videos:   videos,
		comments: comments,
		likes:    likes,
		counters: counters,
		producer: producer,
	}
}

func (s *engagementService) CreateComment(ctx context.Context, userID string, videoID uint, content string, parentID *uint) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	comment, err := s.comments.Create(ctx, videoID, userID, content, parentID)
	if err != nil {
		return nil, err
	}
	if err := s.videos.RecomputeStats(ctx, videoID); err != nil {
		pkglog.Ctx(ctx).Warn().Err(err).Uint(pkglog.FieldVideoID, videoID).Msg("failed to recompute video stats after comment")
	}

	if s.producer != nil {
		if err := s.producer.ProduceCommentCreated(ctx, userID, uintKey(videoID), uintKey(comment.ID)); err != nil {
			pkglog.Ctx(ctx).Warn().Err(err).Msg("failed to produce comment event")
		}
	}

	// Re-read so the fanned-out comment carries the persisted timestamps
	// and the denormalized author.
	return s.comments.LatestByVideo(ctx, videoID)
}

func (s *engagementService) Comments(ctx context.Context, videoID uint, offset, limit int) ([]*domain.Comment, error) {
	return s.comments.ListByVideo(ctx, videoID, offset, limit)
}

func (s *engagementService) ToggleVideoLike(ctx context.Context, userID string, videoID uint) (bool, int64, error) {
	liked, err := s.likes.Toggle(ctx, userID, &videoID, nil)
	if err != nil {
		return false, 0, err
	}
	if err := s.videos.RecomputeStats(ctx, videoID); err != nil {
		pkglog.Ctx(ctx).Warn().Err(err).Uint(pkglog.FieldVideoID, videoID).Msg("failed to recompute video stats after like")
	}

	count, err := s.videos.GetLikesCount(ctx, videoID)
	if err != nil {
		return false, 0, err
	}
	if serr := s.counters.SetVideoLikes(ctx, videoID, count); serr != nil {
		pkglog.Ctx(ctx).Warn().Err(serr).Uint(pkglog.FieldVideoID, videoID).Msg("failed to refresh likes counter")
	}

	if s.producer != nil {
		if err := s.producer.ProduceLikeToggled(ctx, userID, uintKey(videoID), "", liked); err != nil {
			pkglog.Ctx(ctx).Warn().Err(err).Msg("failed to produce like event")
		}
	}
	return liked, count, nil
}

func (s *engagementService) ToggleCommentLike(ctx context.Context, userID string, commentID uint) (bool, error) {
	liked, err := s.likes.Toggle(ctx, userID, nil, &commentID)
	if err != nil {
		return false, err
	}
	if s.producer != nil {
		if err := s.producer.ProduceLikeToggled(ctx, userID, "", uintKey(commentID), liked); err != nil {
			pkglog.Ctx(ctx).Warn().Err(err).Msg("failed to produce like event")
		}
	}
	return liked, nil
}

func (s *engagementService) VideoLikesCount(ctx context.Context, videoID uint) (int64, error) {
	if count, ok, err := s.counters.GetVideoLikes(ctx, videoID); err == nil && ok {
		return count, nil
	}

	key := "video-likes:" + uintKey(videoID)
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		count, err := s.videos.GetLikesCount(ctx, videoID)
		if err != nil {
			return int64(0), err
		}
		if serr := s.counters.SetVideoLikes(ctx, videoID, count); serr != nil {
			pkglog.Ctx(ctx).Warn().Err(serr).Uint(pkglog.FieldVideoID, videoID).Msg("failed to refresh likes counter")
		}
		return count, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}
