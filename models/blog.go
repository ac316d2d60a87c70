package models

import "time"

// Blog represents a published article. Blogs are authored by admins;
// AuthorEmail records who published it.
type Blog struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	AuthorEmail string     `gorm:"size:255" json:"author_email,omitempty"`
	ImageURL    string     `gorm:"size:1024" json:"image_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	// Likes vanish with the blog; comments are not associated here so a
	// deleted blog leaves its comment rows behind as an audit trail.
	Likes []BlogLike `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}

// BlogLike marks that a user likes a blog. One row per (blog, user) pair;
// toggling a like inserts or removes the row.
type BlogLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BlogID    uint      `gorm:"uniqueIndex:idx_blog_likes_blog_user;not null" json:"blog_id"`
	UserID    uint      `gorm:"uniqueIndex:idx_blog_likes_blog_user;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
