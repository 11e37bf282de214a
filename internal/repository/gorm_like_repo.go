package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/SKT-TRTR/zyrok-mobile-app/internal/domain"
)

// GormLikeRepository implements LikeRepository using GORM.
type GormLikeRepository struct {
	db *gorm.DB
}

// NewGormLikeRepository creates a new GORM-backed like repository.
func NewGormLikeRepository(db *gorm.DB) *GormLikeRepository {
	return &GormLikeRepository{db: db}
}

// Toggle flips the like row for (user, target) inside one transaction:
// delete-if-present, else insert. The state after the call depends only on
// the state before it, never on a client-supplied boolean, so concurrent
// toggles from the same user's multiple connections stay correct. A
// concurrent insert racing past the delete surfaces as a unique violation
// and is treated as "already liked": the row is removed instead.
func (r *GormLikeRepository) Toggle(ctx context.Context, userID string, videoID, commentID *uint) (bool, error) {
	if (videoID == nil) == (commentID == nil) {
		return false, ErrBadTarget
	}

	scope := func(tx *gorm.DB) *gorm.DB {
		q := tx.Where("user_id = ?", userID)
		if videoID != nil {
			return q.Where("video_id = ?", *videoID)
		}
		return q.Where("comment_id = ?", *commentID)
	}

	var nowLiked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := scope(tx).Delete(&domain.LikeModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			nowLiked = false
			return nil
		}

		like := domain.LikeModel{UserID: userID, VideoID: videoID, CommentID: commentID}
		if err := tx.Create(&like).Error; err != nil {
			if isUniqueViolation(err) {
				// Lost the race to a concurrent like; flip means unlike.
				nowLiked = false
				return scope(tx).Delete(&domain.LikeModel{}).Error
			}
			return err
		}
		nowLiked = true
		return nil
	})
	return nowLiked, err
}

var _ LikeRepository = (*GormLikeRepository)(nil)
