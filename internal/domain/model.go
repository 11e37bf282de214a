package domain

import (
	"time"

	"gorm.io/gorm"

	"github.com/SKT-TRTR/zyrok-mobile-app/pkg/database"
)

// UserModel is the GORM model for the users table. IDs come from the
// identity provider, so they are strings rather than serials.
type UserModel struct {
	ID              string `gorm:"type:varchar(36);primaryKey"`
	Email           string `gorm:"type:varchar(255);uniqueIndex"`
	Username        string `gorm:"type:varchar(50);uniqueIndex"`
	FirstName       string `gorm:"type:varchar(100)"`
	LastName        string `gorm:"type:varchar(100)"`
	Bio             string `gorm:"type:text"`
	ProfileImageURL string `gorm:"type:text"`
	FollowersCount  int64  `gorm:"default:0"`
	FollowingCount  int64  `gorm:"default:0"`
	LikesCount      int64  `gorm:"default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (UserModel) TableName() string { return "users" }

// VideoModel is the GORM model for the videos table.
type VideoModel struct {
	ID            uint   `gorm:"primaryKey"`
	UserID        string `gorm:"type:varchar(36);index;not null"`
	User          *UserModel
	Title         string `gorm:"type:text;not null"`
	Description   string `gorm:"type:text"`
	VideoURL      string `gorm:"type:text;not null"`
	ThumbnailURL  string `gorm:"type:text"`
	Duration      int    // seconds
	LikesCount    int64  `gorm:"default:0"`
	CommentsCount int64  `gorm:"default:0"`
	SharesCount   int64  `gorm:"default:0"`
	ViewsCount    int64  `gorm:"default:0"`
	SoundName     string `gorm:"type:text"`
	SoundURL      string `gorm:"type:text"`
	Tags          database.StringArray `gorm:"type:text"`
	CreatedAt     time.Time            `gorm:"index"`
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (VideoModel) TableName() string { return "videos" }

// CommentModel is the GORM model for the comments table.
type CommentModel struct {
	ID         uint   `gorm:"primaryKey"`
	VideoID    uint   `gorm:"index;not null"`
	UserID     string `gorm:"type:varchar(36);index;not null"`
	User       *UserModel
	Content    string `gorm:"type:text;not null"`
	LikesCount int64  `gorm:"default:0"`
	ParentID   *uint  `gorm:"index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (CommentModel) TableName() string { return "comments" }

// LikeModel is the GORM model for the likes table. Exactly one of VideoID
// and CommentID is set; the composite unique indexes make a repeated
// insert for the same (user, target) pair fail instead of duplicating.
type LikeModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"type:varchar(36);not null;uniqueIndex:idx_likes_user_video;uniqueIndex:idx_likes_user_comment"`
	VideoID   *uint  `gorm:"uniqueIndex:idx_likes_user_video"`
	CommentID *uint  `gorm:"uniqueIndex:idx_likes_user_comment"`
	CreatedAt time.Time
}

func (LikeModel) TableName() string { return "likes" }

// FollowModel is the GORM model for the follows table.
type FollowModel struct {
	ID          uint   `gorm:"primaryKey"`
	FollowerID  string `gorm:"type:varchar(36);not null;uniqueIndex:idx_follows_pair"`
	FollowingID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_follows_pair;index"`
	CreatedAt   time.Time
}

func (FollowModel) TableName() string { return "follows" }

// MusicModel is the GORM model for the music library.
type MusicModel struct {
	ID         string `gorm:"type:varchar(36);primaryKey"`
	Title      string `gorm:"type:varchar(200);not null"`
	Artist     string `gorm:"type:varchar(200)"`
	Duration   int
	URL        string `gorm:"type:text;not null"`
	Thumbnail  string `gorm:"type:text"`
	IsOriginal bool   `gorm:"default:false"`
	UsageCount int64  `gorm:"default:0"`
	CreatedAt  time.Time
}

func (MusicModel) TableName() string { return "music" }

// User is the API shape of a user profile.
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email,omitempty"`
	Username        string    `json:"username"`
	FirstName       string    `json:"first_name,omitempty"`
	LastName        string    `json:"last_name,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	FollowersCount  int64     `json:"followers_count"`
	FollowingCount  int64     `json:"following_count"`
	LikesCount      int64     `json:"likes_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// Video is the API shape of a video, author denormalized.
type Video struct {
	ID            uint      `json:"id"`
	UserID        string    `json:"user_id"`
	User          *User     `json:"user,omitempty"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	VideoURL      string    `json:"video_url"`
	ThumbnailURL  string    `json:"thumbnail_url,omitempty"`
	Duration      int       `json:"duration,omitempty"`
	LikesCount    int64     `json:"likes_count"`
	CommentsCount int64     `json:"comments_count"`
	SharesCount   int64     `json:"shares_count"`
	ViewsCount    int64     `json:"views_count"`
	SoundName     string    `json:"sound_name,omitempty"`
	SoundURL      string    `json:"sound_url,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Comment is the API shape of a comment, author denormalized for display.
type Comment struct {
	ID         uint      `json:"id"`
	VideoID    uint      `json:"video_id"`
	UserID     string    `json:"user_id"`
	User       *User     `json:"user,omitempty"`
	Content    string    `json:"content"`
	LikesCount int64     `json:"likes_count"`
	ParentID   *uint     `json:"parent_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Music is the API shape of a music library entry.
type Music struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist,omitempty"`
	Duration   int    `json:"duration,omitempty"`
	URL        string `json:"url"`
	Thumbnail  string `json:"thumbnail,omitempty"`
	IsOriginal bool   `json:"is_original"`
	UsageCount int64  `json:"usage_count"`
}

// ToDomain converts UserModel to User.
func (m *UserModel) ToDomain() *User {
	return &User{
		ID:              m.ID,
		Email:           m.Email,
		Username:        m.Username,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		Bio:             m.Bio,
		ProfileImageURL: m.ProfileImageURL,
		FollowersCount:  m.FollowersCount,
		FollowingCount:  m.FollowingCount,
		LikesCount:      m.LikesCount,
		CreatedAt:       m.CreatedAt,
	}
}

// ToDomain converts VideoModel to Video.
func (m *VideoModel) ToDomain() *Video {
	v := &Video{
		ID:            m.ID,
		UserID:        m.UserID,
		Title:         m.Title,
		Description:   m.Description,
		VideoURL:      m.VideoURL,
		ThumbnailURL:  m.ThumbnailURL,
		Duration:      m.Duration,
		LikesCount:    m.LikesCount,
		CommentsCount: m.CommentsCount,
		SharesCount:   m.SharesCount,
		ViewsCount:    m.ViewsCount,
		SoundName:     m.SoundName,
		SoundURL:      m.SoundURL,
		Tags:          []string(m.Tags),
		CreatedAt:     m.CreatedAt,
	}
	if m.User != nil {
		v.User = m.User.ToDomain()
	}
	return v
}

// ToDomain converts CommentModel to Comment.
func (m *CommentModel) ToDomain() *Comment {
	c := &Comment{
		ID:         m.ID,
		VideoID:    m.VideoID,
		UserID:     m.UserID,
		Content:    m.Content,
		LikesCount: m.LikesCount,
		ParentID:   m.ParentID,
		CreatedAt:  m.CreatedAt,
	}
	if m.User != nil {
		c.User = m.User.ToDomain()
	}
	return c
}

// ToDomain converts MusicModel to Music.
func (m *MusicModel) ToDomain() *Music {
	return &Music{
		ID:         m.ID,
		Title:      m.Title,
		Artist:     m.Artist,
		Duration:   m.Duration,
		URL:        m.URL,
		Thumbnail:  m.Thumbnail,
		IsOriginal: m.IsOriginal,
		UsageCount: m.UsageCount,
	}
}

// Models returns every GORM model for auto-migration.
func Models() []interface{} {
	return []interface{}{
		&UserModel{},
		&VideoModel{},
		&CommentModel{},
		&LikeModel{},
		&FollowModel{},
		&MusicModel{},
	}
}
