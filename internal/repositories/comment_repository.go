package repositories

import (
	"github.com/proconnect-app/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations.
// Comments are append-only; there is no update or delete.
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentsByPostID(postID uint) ([]models.CommentView, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment in PostgreSQL. The comment's ID and
// CreatedAt are populated on return.
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	if r.db == nil {
		return ErrNotConnected
	}
	return r.db.Create(comment).Error
}

// GetCommentsByPostID retrieves all comments for a specific post joined
// with the author's name, ordered oldest first. A disconnected database
// yields an empty list rather than an error.
func (r *PostgresCommentRepository) GetCommentsByPostID(postID uint) ([]models.CommentView, error) {
	if r.db == nil {
		return []models.CommentView{}, nil
	}
	var comments []models.CommentView
	err := r.db.Raw(`
		SELECT
			c.id,
			c.user_id,
			c.post_id,
			c.content,
			c.created_at,
			u.name AS author_name
		FROM comments c
		JOIN users u ON c.user_id = u.id
		WHERE c.post_id = ?
		ORDER BY c.created_at ASC`, postID).Scan(&comments).Error
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []models.CommentView{}
	}
	return comments, nil
}
