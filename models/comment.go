package models

import "time"

// Comment moderation states. Only published comments appear in public listings;
// the remaining states are reserved for moderation workflows.
const (
	CommentStatusPublished = "published"
	CommentStatusPending   = "pending"
	CommentStatusFlagged   = "flagged"
	CommentStatusRemoved   = "removed"
)

// TombstoneBody replaces the content of a soft-deleted comment.
const TombstoneBody = "[deleted]"

// Comment represents a reader's reply to a blog. Replies to other comments
// carry a ParentID; the hierarchy is reconstructed by the client, the table
// itself stays flat. AuthorName and AuthorEmail are a snapshot of the author's
// identity at creation time and are never re-synced.
type Comment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BlogID      uint      `gorm:"index:idx_comments_blog_created,priority:1;not null" json:"blog_id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	AuthorName  string    `gorm:"size:64;not null" json:"author_name"`
	AuthorEmail string    `gorm:"size:255" json:"author_email,omitempty"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	ParentID    *uint     `gorm:"index" json:"parent_id,omitempty"`
	Status      string    `gorm:"size:16;default:'published'" json:"status"`
	IsEdited    bool      `gorm:"default:false" json:"is_edited"`
	IsDeleted   bool      `gorm:"default:false" json:"is_deleted"`
	LikesCount  int       `gorm:"default:0" json:"likes_count"`
	CreatedAt   time.Time `gorm:"index:idx_comments_blog_created,priority:2,sort:desc" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
