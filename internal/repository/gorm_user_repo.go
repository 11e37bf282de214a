package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SKT-TRTR/zyrok-mobile-app/internal/domain"
)

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM-backed user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Get returns one user profile.
func (r *GormUserRepository) Get(ctx context.Context, id string) (*domain.User, error) {
	var model domain.UserModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Upsert inserts the user or refreshes its profile fields. Identity comes
// from the auth provider, so the row may appear at any time.
func (r *GormUserRepository) Upsert(ctx context.Context, user *domain.UserModel) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email", "username", "first_name", "last_name", "bio", "profile_image_url", "updated_at",
		}),
	}).Create(user).Error
}

// Search matches usernames against the query.
func (r *GormUserRepository) Search(ctx context.Context, query string, limit int) ([]*domain.User, error) {
	pattern := "%" + query + "%"
	var models []domain.UserModel
	err := r.db.WithContext(ctx).
		Where("username LIKE ?", pattern).
		Order("followers_count DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return usersToDomain(models), nil
}

// RecomputeStats recounts the denormalized counters on the users row:
// followers, following, and likes received across the user's videos.
func (r *GormUserRepository) RecomputeStats(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&domain.UserModel{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"followers_count": gorm.Expr("(SELECT COUNT(*) FROM follows WHERE follows.following_id = ?)", id),
			"following_count": gorm.Expr("(SELECT COUNT(*) FROM follows WHERE follows.follower_id = ?)", id),
			"likes_count": gorm.Expr(
				"(SELECT COUNT(*) FROM likes JOIN videos ON likes.video_id = videos.id WHERE videos.user_id = ?)", id),
		}).Error
}

var _ UserRepository = (*GormUserRepository)(nil)
