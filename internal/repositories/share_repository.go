package repositories

import (
	"github.com/proconnect-app/backend/internal/models"
	"gorm.io/gorm"
)

// ShareRepository defines the interface for share data operations. Same
// shape as LikeRepository.
type ShareRepository interface {
	ToggleShare(userID, postID uint) (shared bool, count int64, err error)
}

// PostgresShareRepository implements ShareRepository for PostgreSQL
type PostgresShareRepository struct {
	db *gorm.DB
}

// NewPostgresShareRepository creates a new PostgresShareRepository
func NewPostgresShareRepository(db *gorm.DB) *PostgresShareRepository {
	return &PostgresShareRepository{db: db}
}

// ToggleShare flips the (user, post) share membership. Same transaction
// shape as PostgresLikeRepository.ToggleLike.
func (r *PostgresShareRepository) ToggleShare(userID, postID uint) (shared bool, count int64, err error) {
	if r.db == nil {
		return false, 0, ErrNotConnected
	}
	err = r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Share{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			shared = false
		} else {
			if err := tx.Create(&models.Share{UserID: userID, PostID: postID}).Error; err != nil {
				return err
			}
			shared = true
		}
		return tx.Model(&models.Share{}).Where("post_id = ?", postID).Count(&count).Error
	})
	if err != nil {
		return false, 0, err
	}
	return shared, count, nil
}
