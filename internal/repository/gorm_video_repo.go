package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/SKT-TRTR/zyrok-mobile-app/internal/domain"
)

// GormVideoRepository implements VideoRepository using GORM.
type GormVideoRepository struct {
	db *gorm.DB
}

// NewGormVideoRepository creates a new GORM-backed video repository.
func NewGormVideoRepository(db *gorm.DB) *GormVideoRepository {
	return &GormVideoRepository{db: db}
}

// Get returns one video with its author.
func (r *GormVideoRepository) Get(ctx context.Context, id uint) (*domain.Video, error) {
	var model domain.VideoModel
	err := r.db.WithContext(ctx).Preload("User").First(&model, id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns a page of videos, newest first, authors preloaded.
func (r *GormVideoRepository) List(ctx context.Context, offset, limit int) ([]*domain.Video, error) {
	var models []domain.VideoModel
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return videosToDomain(models), nil
}

// ListByUser returns a page of one user's videos, newest first.
func (r *GormVideoRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]*domain.Video, error) {
	var models []domain.VideoModel
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return videosToDomain(models), nil
}

// Create inserts a video row.
func (r *GormVideoRepository) Create(ctx context.Context, model *domain.VideoModel) (*domain.Video, error) {
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// Delete soft-deletes a video, but only for its owner.
func (r *GormVideoRepository) Delete(ctx context.Context, id uint, userID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.VideoModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either the video does not exist or the caller is not the owner.
		var count int64
		if err := r.db.WithContext(ctx).Model(&domain.VideoModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrNotOwner
		}
		return ErrNotFound
	}
	return nil
}

// Search matches title and description against the query.
func (r *GormVideoRepository) Search(ctx context.Context, query string, limit int) ([]*domain.Video, error) {
	pattern := "%" + query + "%"
	var models []domain.VideoModel
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("title LIKE ? OR description LIKE ?", pattern, pattern).
		Order("likes_count DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return videosToDomain(models), nil
}

// IncrementViews bumps the view counter in place.
func (r *GormVideoRepository) IncrementViews(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&domain.VideoModel{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
}

// RecomputeStats recounts likes_count and comments_count on the video row
// from the relation tables. The recount runs in the database so the row
// never holds a value no reader could reproduce.
func (r *GormVideoRepository) RecomputeStats(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&domain.VideoModel{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"likes_count":    gorm.Expr("(SELECT COUNT(*) FROM likes WHERE likes.video_id = ?)", id),
			"comments_count": gorm.Expr("(SELECT COUNT(*) FROM comments WHERE comments.video_id = ?)", id),
		}).Error
}

// GetLikesCount reads the persisted likes counter for a video.
func (r *GormVideoRepository) GetLikesCount(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.VideoModel{}).
		Where("id = ?", id).
		Pluck("likes_count", &count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func videosToDomain(models []domain.VideoModel) []*domain.Video {
	videos := make([]*domain.Video, 0, len(models))
	for i := range models {
		videos = append(videos, models[i].ToDomain())
	}
	return videos
}

var _ VideoRepository = (*GormVideoRepository)(nil)
