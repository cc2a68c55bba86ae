package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/proconnect-app/backend/internal/middleware"
	"github.com/proconnect-app/backend/internal/models"
	"github.com/proconnect-app/backend/internal/repositories"
	"github.com/proconnect-app/backend/pkg/logger"
	"gorm.io/gorm"
)

// maxPostLength is the application-enforced post length limit.
const maxPostLength = 280

// PostHandler handles HTTP requests related to posts and feeds
type PostHandler struct {
	conn           repositories.Connectivity
	postRepository repositories.PostRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(conn repositories.Connectivity, postRepo repositories.PostRepository) *PostHandler {
	return &PostHandler{conn: conn, postRepository: postRepo}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.DELETE("/posts/:post_id", h.DeletePost)
	g.GET("/posts", h.GetPosts)
	g.GET("/users/:id/posts", h.GetUserPosts)
}

// CreatePost creates a post owned by the authenticated user and returns
// it annotated with the author name and zeroed counts and flags.
func (h *PostHandler) CreatePost(c echo.Context) error {
	// Connectivity before auth: with the database down the session lookup
	// fails too, and the caller should hear about the database.
	if !h.conn.Connected() {
		return respondError(c, http.StatusServiceUnavailable, "Database not connected")
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		return respondError(c, http.StatusUnauthorized, "You must be logged in to create a post")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload")
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return respondError(c, http.StatusBadRequest, "Post content is required")
	}
	if utf8.RuneCountInString(content) > maxPostLength {
		return respondError(c, http.StatusBadRequest, "Post is too long (max 280 characters)")
	}

	post := &models.Post{
		UserID:  user.ID,
		Content: content,
	}

	if err := h.postRepository.CreatePost(post); err != nil {
		if isNotConnected(err) {
			return respondError(c, http.StatusServiceUnavailable, "Database not connected")
		}
		logger.Error.Printf("post insert failed: %v", err)
		return respondError(c, http.StatusInternalServerError, "Failed to create post. Please try again.")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"post": models.FeedPost{
			ID:         post.ID,
			UserID:     user.ID,
			Content:    content,
			CreatedAt:  post.CreatedAt,
			AuthorName: user.Name,
		},
	})
}

// DeletePost deletes a post after verifying the caller owns it. A missing
// post is reported distinctly from an ownership failure.
func (h *PostHandler) DeletePost(c echo.Context) error {
	postID, err := parsePostID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid post ID")
	}

	if !h.conn.Connected() {
		return respondError(c, http.StatusServiceUnavailable, "Database not connected")
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		return respondError(c, http.StatusUnauthorized, "You must be logged in to delete posts")
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		if isNotConnected(err) {
			return respondError(c, http.StatusServiceUnavailable, "Database not connected")
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, http.StatusNotFound, "Post not found")
		}
		logger.Error.Printf("post lookup failed: %v", err)
		return respondError(c, http.StatusInternalServerError, "Failed to delete post. Please try again.")
	}

	if post.UserID != user.ID {
		return respondError(c, http.StatusForbidden, "You can only delete your own posts")
	}

	if err := h.postRepository.DeletePost(postID); err != nil {
		logger.Error.Printf("post delete failed: %v", err)
		return respondError(c, http.StatusInternalServerError, "Failed to delete post. Please try again.")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Post deleted successfully"})
}

// GetPosts returns the global feed annotated for the current viewer.
// Reads soft-fail to an empty feed.
func (h *PostHandler) GetPosts(c echo.Context) error {
	posts, err := h.postRepository.GetPosts(viewerID(c))
	if err != nil {
		logger.Error.Printf("feed query failed: %v", err)
		return c.JSON(http.StatusOK, []models.FeedPost{})
	}
	return c.JSON(http.StatusOK, posts)
}

// GetUserPosts returns one author's feed annotated for the current viewer.
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid user ID")
	}

	posts, err := h.postRepository.GetUserPosts(uint(userID), viewerID(c))
	if err != nil {
		logger.Error.Printf("user feed query failed: %v", err)
		return c.JSON(http.StatusOK, []models.FeedPost{})
	}
	return c.JSON(http.StatusOK, posts)
}

// viewerID is the authenticated user's id, or 0 for anonymous viewers so
// the feed's like/share flag joins match nothing.
func viewerID(c echo.Context) uint {
	if user := middleware.CurrentUser(c); user != nil {
		return user.ID
	}
	return 0
}
