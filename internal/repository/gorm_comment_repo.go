package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/SKT-TRTR/zyrok-mobile-app/internal/domain"
)

// GormCommentRepository implements CommentRepository using GORM.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GORM-backed comment repository.
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Create inserts a comment row.
func (r *GormCommentRepository) Create(ctx context.Context, videoID uint, userID, content string, parentID *uint) (*domain.Comment, error) {
	model := domain.CommentModel{
		VideoID:  videoID,
		UserID:   userID,
		Content:  content,
		ParentID: parentID,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// LatestByVideo returns the newest comment on a video with its author.
func (r *GormCommentRepository) LatestByVideo(ctx context.Context, videoID uint) (*domain.Comment, error) {
	var model domain.CommentModel
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("video_id = ?", videoID).
		Order("id DESC").
		First(&model).Error
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByVideo returns a page of comments on a video, newest first,
// authors preloaded.
func (r *GormCommentRepository) ListByVideo(ctx context.Context, videoID uint, offset, limit int) ([]*domain.Comment, error) {
	var models []domain.CommentModel
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("video_id = ?", videoID).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	comments := make([]*domain.Comment, 0, len(models))
	for i := range models {
		comments = append(comments, models[i].ToDomain())
	}
	return comments, nil
}

var _ CommentRepository = (*GormCommentRepository)(nil)
