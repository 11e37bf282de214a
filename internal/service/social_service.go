package service

import (
	"context"
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/SKT-TRTR/zyrok-mobile-app/internal/domain"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/kafka"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/repository"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/store"
	pkglog "github.com/SKT-TRTR/zyrok-mobile-app/pkg/log"
)

func uintKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

type socialService struct {
	follows  repository.FollowRepository
	users    repository.UserRepository
	counters store.CounterStore
	producer kafka.EngagementEventProducer
	group    singleflight.Group
}

// NewSocialService builds the follow-graph service. producer may be nil
// when event streaming is disabled.
func NewSocialService(
	follows repository.FollowRepository,
	users repository.UserRepository,
	counters store.CounterStore,
	producer kafka.EngagementEventProducer,
) SocialService {
	return &socialService{
		follows:  follows,
		users:    users,
		counters: counters,
		producer: producer,
	}
}

func (s *socialService) ToggleFollow(ctx context.Context, followerID, followingID string) (bool, error) {
	following, err := s.follows.Toggle(ctx, followerID, followingID)
	if err != nil {
		return false, err
	}

	for _, id := range []string{followerID, followingID} {
		if err := s.users.RecomputeStats(ctx, id); err != nil {
			pkglog.Ctx(ctx).Warn().Err(err).Str(pkglog.FieldUserID, id).Msg("failed to recompute user stats after follow")
		}
	}

	count, err := s.follows.CountFollowers(ctx, followingID)
	if err == nil {
		if serr := s.counters.SetFollowers(ctx, followingID, count); serr != nil {
			pkglog.Ctx(ctx).Warn().Err(serr).Str(pkglog.FieldUserID, followingID).Msg("failed to refresh followers counter")
		}
	} else {
		pkglog.Ctx(ctx).Warn().Err(err).Str(pkglog.FieldUserID, followingID).Msg("failed to read followers count after follow")
	}

	if s.producer != nil {
		if err := s.producer.ProduceFollowToggled(ctx, followerID, followingID, following); err != nil {
			pkglog.Ctx(ctx).Warn().Err(err).Msg("failed to produce follow event")
		}
	}
	return following, nil
}

func (s *socialService) FollowersCount(ctx context.Context, userID string) (int64, error) {
	if count, ok, err := s.counters.GetFollowers(ctx, userID); err == nil && ok {
		return count, nil
	}

	v, err, _ := s.group.Do("followers:"+userID, func() (interface{}, error) {
		count, err := s.follows.CountFollowers(ctx, userID)
		if err != nil {
			return int64(0), err
		}
		if serr := s.counters.SetFollowers(ctx, userID, count); serr != nil {
			pkglog.Ctx(ctx).Warn().Err(serr).Str(pkglog.FieldUserID, userID).Msg("failed to refresh followers counter")
		}
		return count, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

func (s *socialService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.Get(ctx, userID)
}

func (s *socialService) Followers(ctx context.Context, userID string, offset, limit int) ([]*domain.User, error) {
	return s.follows.ListFollowers(ctx, userID, offset, limit)
}

func (s *socialService) Following(ctx context.Context, userID string, offset, limit int) ([]*domain.User, error) {
	return s.follows.ListFollowing(ctx, userID, offset, limit)
}

func (s *socialService) SearchUsers(ctx context.Context, query string, limit int) ([]*domain.User, error) {
	return s.users.Search(ctx, query, limit)
}
