package handlers

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/proconnect-app/backend/internal/middleware"
	"github.com/proconnect-app/backend/internal/models"
	"github.com/proconnect-app/backend/internal/repositories"
	"github.com/proconnect-app/backend/pkg/logger"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	conn              repositories.Connectivity
	commentRepository repositories.CommentRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(conn repositories.Connectivity, commentRepo repositories.CommentRepository) *CommentHandler {
	return &CommentHandler{conn: conn, commentRepository: commentRepo}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.AddComment)
	g.GET("/posts/:post_id/comments", h.GetComments)
}

// AddComment appends an immutable comment to a post and returns it
// enriched with the author's name for immediate rendering.
func (h *CommentHandler) AddComment(c echo.Context) error {
	postID, err := parsePostID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid post ID")
	}

	// Connectivity before auth: with the database down the session lookup
	// fails too, and the caller should hear about the database.
	if !h.conn.Connected() {
		return respondError(c, http.StatusServiceUnavailable, "Database not connected")
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		return respondError(c, http.StatusUnauthorized, "You must be logged in to comment")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload")
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return respondError(c, http.StatusBadRequest, "Comment content is required")
	}
	if utf8.RuneCountInString(req.Content) > models.MaxCommentLength {
		return respondError(c, http.StatusBadRequest, "Comment is too long (max 500 characters)")
	}

	comment := &models.Comment{
		UserID:  user.ID,
		PostID:  postID,
		Content: content,
	}

	if err := h.commentRepository.CreateComment(comment); err != nil {
		if isNotConnected(err) {
			return respondError(c, http.StatusServiceUnavailable, "Database not connected")
		}
		if repositories.IsForeignKeyViolation(err) {
			return respondError(c, http.StatusNotFound, "Post not found")
		}
		logger.Error.Printf("comment insert failed: %v", err)
		return respondError(c, http.StatusInternalServerError, "Failed to add comment. Please try again.")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"comment": models.CommentView{
			ID:         comment.ID,
			UserID:     user.ID,
			PostID:     postID,
			Content:    content,
			CreatedAt:  comment.CreatedAt,
			AuthorName: user.Name,
		},
	})
}

// GetComments lists a post's comments oldest first. Reads soft-fail: any
// lookup error yields an empty list, not an error response.
func (h *CommentHandler) GetComments(c echo.Context) error {
	postID, err := parsePostID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid post ID")
	}

	comments, err := h.commentRepository.GetCommentsByPostID(postID)
	if err != nil {
		logger.Error.Printf("comment lookup failed for post %d: %v", postID, err)
		return c.JSON(http.StatusOK, []models.CommentView{})
	}

	return c.JSON(http.StatusOK, comments)
}
