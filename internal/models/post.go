package models

import "time"

// Post is a feed post. Likes, shares, and comments reference it with
// cascading foreign keys, so deleting a post removes its interactions.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	User      User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content string `json:"content" form:"content"`
}

// FeedPost is a post annotated with its author's name, aggregate
// interaction counts, and the viewing user's own like/share flags.
type FeedPost struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"user_id"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	AuthorName   string    `json:"author_name"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
	ShareCount   int64     `json:"share_count"`
	UserLiked    bool      `json:"user_liked"`
	UserShared   bool      `json:"user_shared"`
}
