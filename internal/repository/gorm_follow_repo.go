package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/SKT-TRTR/zyrok-mobile-app/internal/domain"
)

// GormFollowRepository implements FollowRepository using GORM.
type GormFollowRepository struct {
	db *gorm.DB
}

// NewGormFollowRepository creates a new GORM-backed follow repository.
func NewGormFollowRepository(db *gorm.DB) *GormFollowRepository {
	return &GormFollowRepository{db: db}
}

// Toggle flips the follow relationship atomically: delete-if-present,
// else insert. The unique (follower, following) index absorbs races
// between a user's concurrent connections.
func (r *GormFollowRepository) Toggle(ctx context.Context, followerID, followingID string) (bool, error) {
	if followerID == followingID {
		return false, ErrSelfFollow
	}

	var nowFollowing bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("follower_id = ? AND following_id = ?", followerID, followingID).
			Delete(&domain.FollowModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			nowFollowing = false
			return nil
		}

		follow := domain.FollowModel{FollowerID: followerID, FollowingID: followingID}
		if err := tx.Create(&follow).Error; err != nil {
			if isUniqueViolation(err) {
				nowFollowing = false
				return tx.
					Where("follower_id = ? AND following_id = ?", followerID, followingID).
					Delete(&domain.FollowModel{}).Error
			}
			return err
		}
		nowFollowing = true
		return nil
	})
	return nowFollowing, err
}

// CountFollowers returns the number of users following userID.
func (r *GormFollowRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.FollowModel{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CountFollowing returns the number of users userID follows.
func (r *GormFollowRepository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.FollowModel{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ListFollowers returns the users following userID, newest first.
func (r *GormFollowRepository) ListFollowers(ctx context.Context, userID string, offset, limit int) ([]*domain.User, error) {
	var models []domain.UserModel
	err := r.db.WithContext(ctx).Model(&domain.UserModel{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.following_id = ?", userID).
		Order("follows.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return usersToDomain(models), nil
}

// ListFollowing returns the users userID follows, newest first.
func (r *GormFollowRepository) ListFollowing(ctx context.Context, userID string, offset, limit int) ([]*domain.User, error) {
	var models []domain.UserModel
	err := r.db.WithContext(ctx).Model(&domain.UserModel{}).
		Joins("JOIN follows ON follows.following_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return usersToDomain(models), nil
}

func usersToDomain(models []domain.UserModel) []*domain.User {
	users := make([]*domain.User, 0, len(models))
	for i := range models {
		users = append(users, models[i].ToDomain())
	}
	return users
}

var _ FollowRepository = (*GormFollowRepository)(nil)
