package models

import "time"

// MaxCommentLength is the application-enforced comment length limit.
const MaxCommentLength = 500

// Comment is an immutable comment on a post; there is no edit or delete path.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	User      User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	PostID    uint      `json:"post_id" gorm:"index;not null"`
	Post      Post      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content string `json:"content" form:"content"`
}

// CommentView is a comment joined with its author's display name for
// immediate client rendering.
type CommentView struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	PostID     uint      `json:"post_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	AuthorName string    `json:"author_name"`
}
