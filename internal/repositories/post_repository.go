package repositories

import (
	"github.com/proconnect-app/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	DeletePost(id uint) error
	GetPosts(viewerID uint) ([]models.FeedPost, error)
	GetUserPosts(userID, viewerID uint) ([]models.FeedPost, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post in PostgreSQL. ID and CreatedAt are
// populated on return.
func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	if r.db == nil {
		return ErrNotConnected
	}
	return r.db.Create(post).Error
}

// GetPostByID retrieves a post by ID from PostgreSQL
func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	if r.db == nil {
		return nil, ErrNotConnected
	}
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost deletes a post by ID. Cascading foreign keys remove the
// post's likes, shares, and comments.
func (r *PostgresPostRepository) DeletePost(id uint) error {
	if r.db == nil {
		return ErrNotConnected
	}
	return r.db.Delete(&models.Post{}, id).Error
}

// feedQuery annotates every post with its author name, aggregate
// like/comment/share counts, and the viewer's own like/share flags in a
// single pass. viewerID 0 (unauthenticated) matches no interaction rows.
const feedQuery = `
	SELECT
		p.id,
		p.content,
		p.created_at,
		p.user_id,
		u.name AS author_name,
		COALESCE(like_counts.count, 0) AS like_count,
		COALESCE(comment_counts.count, 0) AS comment_count,
		COALESCE(share_counts.count, 0) AS share_count,
		CASE WHEN user_likes.user_id IS NOT NULL THEN true ELSE false END AS user_liked,
		CASE WHEN user_shares.user_id IS NOT NULL THEN true ELSE false END AS user_shared
	FROM posts p
	JOIN users u ON p.user_id = u.id
	LEFT JOIN (
		SELECT post_id, COUNT(*) AS count
		FROM likes
		GROUP BY post_id
	) like_counts ON p.id = like_counts.post_id
	LEFT JOIN (
		SELECT post_id, COUNT(*) AS count
		FROM comments
		GROUP BY post_id
	) comment_counts ON p.id = comment_counts.post_id
	LEFT JOIN (
		SELECT post_id, COUNT(*) AS count
		FROM shares
		GROUP BY post_id
	) share_counts ON p.id = share_counts.post_id
	LEFT JOIN likes user_likes ON p.id = user_likes.post_id AND user_likes.user_id = ?
	LEFT JOIN shares user_shares ON p.id = user_shares.post_id AND user_shares.user_id = ?`

// GetPosts returns the global feed, newest post first.
func (r *PostgresPostRepository) GetPosts(viewerID uint) ([]models.FeedPost, error) {
	if r.db == nil {
		return []models.FeedPost{}, nil
	}
	var posts []models.FeedPost
	err := r.db.Raw(feedQuery+` ORDER BY p.created_at DESC`, viewerID, viewerID).Scan(&posts).Error
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.FeedPost{}
	}
	return posts, nil
}

// GetUserPosts returns a single author's feed, newest post first.
func (r *PostgresPostRepository) GetUserPosts(userID, viewerID uint) ([]models.FeedPost, error) {
	if r.db == nil {
		return []models.FeedPost{}, nil
	}
	var posts []models.FeedPost
	err := r.db.Raw(feedQuery+` WHERE p.user_id = ? ORDER BY p.created_at DESC`, viewerID, viewerID, userID).Scan(&posts).Error
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.FeedPost{}
	}
	return posts, nil
}
