package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/SKT-TRTR/zyrok-mobile-app/internal/domain"
)

// GormMusicRepository implements MusicRepository using GORM.
type GormMusicRepository struct {
	db *gorm.DB
}

// NewGormMusicRepository creates a new GORM-backed music repository.
func NewGormMusicRepository(db *gorm.DB) *GormMusicRepository {
	return &GormMusicRepository{db: db}
}

// List returns a page of the music library, most used first.
func (r *GormMusicRepository) List(ctx context.Context, offset, limit int) ([]*domain.Music, error) {
	var models []domain.MusicModel
	err := r.db.WithContext(ctx).
		Order("usage_count DESC").
		Offset(offset).Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return musicToDomain(models), nil
}

// Search matches title and artist against the query.
func (r *GormMusicRepository) Search(ctx context.Context, query string, limit int) ([]*domain.Music, error) {
	pattern := "%" + query + "%"
	var models []domain.MusicModel
	err := r.db.WithContext(ctx).
		Where("title LIKE ? OR artist LIKE ?", pattern, pattern).
		Order("usage_count DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return musicToDomain(models), nil
}

// IncrementUsage bumps the usage counter when a video attaches the track.
func (r *GormMusicRepository) IncrementUsage(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&domain.MusicModel{}).
		Where("id = ?", id).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error
}

func musicToDomain(models []domain.MusicModel) []*domain.Music {
	tracks := make([]*domain.Music, 0, len(models))
	for i := range models {
		tracks = append(tracks, models[i].ToDomain())
	}
	return tracks
}

var _ MusicRepository = (*GormMusicRepository)(nil)
