package service

import (
	"context"
	"testing"
	"time"

	"github.com/SKT-TRTR/zyrok-mobile-app/internal/domain"
)

// feedVideoRepo serves a fixed page for feed ranking tests.
type feedVideoRepo struct {
	fakeVideoRepo
	page []*domain.Video
}

func (f *feedVideoRepo) List(ctx context.Context, offset, limit int) ([]*domain.Video, error) {
	return f.page, nil
}

func newFeedService(page []*domain.Video) *videoService {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return &videoService{
		videos: &feedVideoRepo{page: page},
		now:    func() time.Time { return now },
		randF:  func() float64 { return 0 },
	}
}

func TestFeedRanksEngagementAboveAge(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	page := []*domain.Video{
		{ID: 1, UserID: "alice", CreatedAt: now.Add(-1 * time.Hour)},
		{ID: 2, UserID: "bob", CreatedAt: now.Add(-1 * time.Hour), LikesCount: 100},
	}
	svc := newFeedService(page)

	feed, err := svc.Feed(context.Background(), "", 0, 10)
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if feed[0].ID != 2 {
		t.Errorf("first video = %d, want 2 (higher engagement)", feed[0].ID)
	}
}

func TestFeedDemotesViewersOwnVideos(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	page := []*domain.Video{
		{ID: 1, UserID: "alice", CreatedAt: now.Add(-1 * time.Hour), LikesCount: 10},
		{ID: 2, UserID: "bob", CreatedAt: now.Add(-1 * time.Hour)},
	}
	svc := newFeedService(page)

	feed, err := svc.Feed(context.Background(), "alice", 0, 10)
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	// Alice's own video scores a tenth of its base, dropping below bob's.
	if feed[0].ID != 2 {
		t.Errorf("first video = %d, want 2 (own video demoted)", feed[0].ID)
	}

	// An anonymous viewer sees the engagement ordering.
	feed, err = svc.Feed(context.Background(), "", 0, 10)
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if feed[0].ID != 1 {
		t.Errorf("first video = %d, want 1", feed[0].ID)
	}
}

func TestRecommendationScoreDecaysWithAge(t *testing.T) {
	svc := newFeedService(nil)
	now := svc.now()

	fresh := &domain.Video{UserID: "bob", CreatedAt: now.Add(-1 * time.Hour)}
	stale := &domain.Video{UserID: "bob", CreatedAt: now.Add(-200 * time.Hour)}

	if fs, ss := svc.recommendationScore(fresh, ""), svc.recommendationScore(stale, ""); fs <= ss {
		t.Errorf("fresh score %f should beat stale score %f", fs, ss)
	}
	// Recency boost bottoms out at zero, it never goes negative.
	if got := svc.recommendationScore(stale, ""); got != 0 {
		t.Errorf("stale score = %f, want 0", got)
	}
}
