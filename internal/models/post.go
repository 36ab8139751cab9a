package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a blog story owned by exactly one author. Mutations must be
// scoped by AuthorID; list endpoints only expose published posts.
type Post struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string         `gorm:"not null;size:255" json:"title"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	Published bool           `gorm:"default:false;index" json:"published"`
	AuthorID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"authorId"`
	ImageURL  string         `gorm:"size:512" json:"imageUrl,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Comments  []Comment `gorm:"foreignKey:PostID" json:"-"`
	LikeCount int64     `gorm:"-" json:"likeCount"`
}

// Comment belongs to a post. Comments are only removed as part of
// deleting their parent post.
type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;index" json:"postId"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null" json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// PostLike is the many-to-many like edge between users and posts.
// The (post_id, user_id) pair is unique so like/unlike stay idempotent
// at the store level.
type PostLike struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_likes_post_user" json:"postId"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_likes_post_user" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
