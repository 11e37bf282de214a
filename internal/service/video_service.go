package service

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"path"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/SKT-TRTR/zyrok-mobile-app/internal/domain"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/repository"
	"github.com/SKT-TRTR/zyrok-mobile-app/pkg/database"
	pkglog "github.com/SKT-TRTR/zyrok-mobile-app/pkg/log"
	"github.com/SKT-TRTR/zyrok-mobile-app/pkg/storage"
)

// mediaURLTTL bounds presigned URLs on backends that sign them; the
// local backend serves stable paths and ignores it.
const mediaURLTTL = 7 * 24 * time.Hour

type videoService struct {
	videos  repository.VideoRepository
	music   repository.MusicRepository
	storage storage.Storage
	now     func() time.Time
	randF   func() float64
}

// NewVideoService builds the feed and upload service.
func NewVideoService(videos repository.VideoRepository, music repository.MusicRepository, st storage.Storage) VideoService {
	return &videoService{
		videos:  videos,
		music:   music,
		storage: st,
		now:     time.Now,
		randF:   rand.Float64,
	}
}

// recommendationScore ranks a video for a viewer. Fresh videos decay
// linearly over their first hundred hours, engagement weighs in after
// that, and a random component keeps the feed from going stale. A
// viewer's own videos are demoted, not hidden.
func (s *videoService) recommendationScore(v *domain.Video, viewerID string) float64 {
	hoursOld := s.now().Sub(v.CreatedAt).Hours()
	score := 100 - hoursOld
	if score < 0 {
		score = 0
	}

	score += float64(v.LikesCount) * 2
	score += float64(v.CommentsCount) * 3
	score += float64(v.ViewsCount) * 0.1
	score += s.randF() * 50

	if viewerID != "" && v.UserID == viewerID {
		score *= 0.1
	}
	return score
}

func (s *videoService) Feed(ctx context.Context, viewerID string, offset, limit int) ([]*domain.Video, error) {
	videos, err := s.videos.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	scores := make(map[uint]float64, len(videos))
	for _, v := range videos {
		scores[v.ID] = s.recommendationScore(v, viewerID)
	}
	sort.SliceStable(videos, func(i, j int) bool {
		return scores[videos[i].ID] > scores[videos[j].ID]
	})
	return videos, nil
}

func (s *videoService) Get(ctx context.Context, id uint) (*domain.Video, error) {
	video, err := s.videos.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.videos.IncrementViews(ctx, id); err != nil {
		pkglog.Ctx(ctx).Warn().Err(err).Uint(pkglog.FieldVideoID, id).Msg("failed to increment view count")
	} else {
		video.ViewsCount++
	}
	return video, nil
}

func (s *videoService) Upload(ctx context.Context, userID string, in UploadInput, file io.Reader, size int64, contentType string) (*domain.Video, error) {
	ext := extensionFor(contentType)
	key := path.Join("videos", userID, uuid.New().String()+ext)
	if err := s.storage.Write(ctx, key, file, size, contentType); err != nil {
		return nil, fmt.Errorf("failed to store video file: %w", err)
	}

	url, err := s.storage.GetURL(ctx, key, mediaURLTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve video url: %w", err)
	}

	model := &domain.VideoModel{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		VideoURL:    url,
		SoundName:   in.SoundName,
		SoundURL:    in.SoundURL,
		Tags:        database.StringArray(in.Tags),
		Duration:    in.Duration,
	}
	video, err := s.videos.Create(ctx, model)
	if err != nil {
		if derr := s.storage.Delete(ctx, key); derr != nil {
			pkglog.Ctx(ctx).Warn().Err(derr).Str("key", key).Msg("failed to delete orphaned upload")
		}
		return nil, err
	}

	if in.MusicID != "" {
		if err := s.music.IncrementUsage(ctx, in.MusicID); err != nil {
			pkglog.Ctx(ctx).Warn().Err(err).Str("music_id", in.MusicID).Msg("failed to increment music usage")
		}
	}

	return video, nil
}

func (s *videoService) Delete(ctx context.Context, id uint, userID string) error {
	return s.videos.Delete(ctx, id, userID)
}

func (s *videoService) ByUser(ctx context.Context, userID string, offset, limit int) ([]*domain.Video, error) {
	return s.videos.ListByUser(ctx, userID, offset, limit)
}

func (s *videoService) Search(ctx context.Context, query string, limit int) ([]*domain.Video, error) {
	return s.videos.Search(ctx, query, limit)
}

func (s *videoService) Music(ctx context.Context, query string, offset, limit int) ([]*domain.Music, error) {
	if query != "" {
		return s.music.Search(ctx, query, limit)
	}
	return s.music.List(ctx, offset, limit)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	case "video/quicktime":
		return ".mov"
	default:
		return ""
	}
}
