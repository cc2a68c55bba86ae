package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/proconnect-app/backend/internal/middleware"
	"github.com/proconnect-app/backend/internal/repositories"
	"github.com/proconnect-app/backend/pkg/logger"
)

// InteractionHandler handles the like and share toggle endpoints.
type InteractionHandler struct {
	conn            repositories.Connectivity
	likeRepository  repositories.LikeRepository
	shareRepository repositories.ShareRepository
}

// NewInteractionHandler creates a new InteractionHandler
func NewInteractionHandler(conn repositories.Connectivity, likeRepo repositories.LikeRepository, shareRepo repositories.ShareRepository) *InteractionHandler {
	return &InteractionHandler{
		conn:            conn,
		likeRepository:  likeRepo,
		shareRepository: shareRepo,
	}
}

// RegisterInteractionRoutes registers like/share toggle routes
func (h *InteractionHandler) RegisterInteractionRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/like", h.ToggleLike)
	g.POST("/posts/:post_id/share", h.ToggleShare)
}

// ToggleLike flips the caller's like on a post and returns the new
// membership and total count.
func (h *InteractionHandler) ToggleLike(c echo.Context) error {
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
		return respondError(c, http.StatusUnauthorized, "You must be logged in to like posts")
	}

	liked, count, err := h.likeRepository.ToggleLike(user.ID, postID)
	if err != nil {
		return h.toggleError(c, "like", err)
	}

	action := "unliked"
	if liked {
		action = "liked"
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"action":    action,
		"liked":     liked,
		"likeCount": count,
	})
}

// ToggleShare flips the caller's share on a post and returns the new
// membership and total count.
func (h *InteractionHandler) ToggleShare(c echo.Context) error {
	postID, err := parsePostID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid post ID")
	}

	if !h.conn.Connected() {
		return respondError(c, http.StatusServiceUnavailable, "Database not connected")
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		return respondError(c, http.StatusUnauthorized, "You must be logged in to share posts")
	}

	shared, count, err := h.shareRepository.ToggleShare(user.ID, postID)
	if err != nil {
		return h.toggleError(c, "share", err)
	}

	action := "unshared"
	if shared {
		action = "shared"
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"action":     action,
		"shared":     shared,
		"shareCount": count,
	})
}

func (h *InteractionHandler) toggleError(c echo.Context, kind string, err error) error {
	switch {
	case isNotConnected(err):
		return respondError(c, http.StatusServiceUnavailable, "Database not connected")
	case repositories.IsForeignKeyViolation(err):
		return respondError(c, http.StatusNotFound, "Post not found")
	case repositories.IsUniqueViolation(err):
		// A concurrent toggle for the same pair won the insert race.
		return respondError(c, http.StatusConflict, "Toggle conflict, please retry")
	default:
		logger.Error.Printf("%s toggle failed: %v", kind, err)
		return respondError(c, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}

func parsePostID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	return uint(id), err
}
