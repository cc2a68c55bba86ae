package models

import "time"

// Like marks that a user liked a post. Row existence is the liked state;
// the composite unique index allows at most one row per (user, post).
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_likes_user_post;not null"`
	User      User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	PostID    uint      `json:"post_id" gorm:"uniqueIndex:idx_likes_user_post;not null"`
	Post      Post      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}
