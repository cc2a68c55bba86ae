package repositories

import (
	"github.com/proconnect-app/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations. The
// toggle is the only mutation; per-post counts and viewer flags come
// from the feed query.
type LikeRepository interface {
	ToggleLike(userID, postID uint) (liked bool, count int64, err error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// ToggleLike flips the (user, post) like membership inside a single
// transaction: delete the row if it exists, insert it otherwise, then
// count likes for the post. Concurrent duplicate toggles lose the race on
// the unique index and fail with a unique violation rather than inserting
// a second row.
func (r *PostgresLikeRepository) ToggleLike(userID, postID uint) (liked bool, count int64, err error) {
	if r.db == nil {
		return false, 0, ErrNotConnected
	}
	err = r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
		} else {
			if err := tx.Create(&models.Like{UserID: userID, PostID: postID}).Error; err != nil {
				return err
			}
			liked = true
		}
		return tx.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	})
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}
