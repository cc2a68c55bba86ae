package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/proconnect-app/backend/internal/middleware"
	"github.com/proconnect-app/backend/internal/models"
	"github.com/proconnect-app/backend/internal/repositories"
	"github.com/proconnect-app/backend/internal/session"
	"github.com/proconnect-app/backend/validators"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type pair struct{ userID, postID uint }

// memStore backs the fake repositories with shared in-memory state so
// handler tests observe cross-entity effects such as cascading deletes.
type memStore struct {
	nextUserID    uint
	nextPostID    uint
	nextCommentID uint
	users         map[uint]*models.User
	posts         map[uint]*models.Post
	likes         map[pair]bool
	shares        map[pair]bool
	comments      map[uint]*models.Comment
	down          bool
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[uint]*models.User),
		posts:    make(map[uint]*models.Post),
		likes:    make(map[pair]bool),
		shares:   make(map[pair]bool),
		comments: make(map[uint]*models.Comment),
	}
}

// Connected implements repositories.Connectivity.
func (s *memStore) Connected() bool { return !s.down }

func uniqueViolationErr() error     { return &pgconn.PgError{Code: "23505"} }
func foreignKeyViolationErr() error { return &pgconn.PgError{Code: "23503"} }

type fakeUserRepo struct{ s *memStore }

func (r *fakeUserRepo) CreateUser(user *models.User) error {
	if r.s.down {
		return repositories.ErrNotConnected
	}
	for _, existing := range r.s.users {
		if existing.Email == user.Email {
			return uniqueViolationErr()
		}
	}
	r.s.nextUserID++
	user.ID = r.s.nextUserID
	user.CreatedAt = time.Now()
	r.s.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	if r.s.down {
		return nil, repositories.ErrNotConnected
	}
	user, ok := r.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	if r.s.down {
		return nil, repositories.ErrNotConnected
	}
	for _, user := range r.s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) UpdateUser(user *models.User) error {
	if r.s.down {
		return repositories.ErrNotConnected
	}
	copied := *user
	r.s.users[user.ID] = &copied
	return nil
}

// DeleteUser mirrors the schema's cascading foreign keys.
func (r *fakeUserRepo) DeleteUser(id uint) error {
	if r.s.down {
		return repositories.ErrNotConnected
	}
	delete(r.s.users, id)
	for postID, post := range r.s.posts {
		if post.UserID == id {
			r.s.deletePostCascade(postID)
		}
	}
	for key := range r.s.likes {
		if key.userID == id {
			delete(r.s.likes, key)
		}
	}
	for key := range r.s.shares {
		if key.userID == id {
			delete(r.s.shares, key)
		}
	}
	for commentID, comment := range r.s.comments {
		if comment.UserID == id {
			delete(r.s.comments, commentID)
		}
	}
	return nil
}

func (s *memStore) deletePostCascade(postID uint) {
	delete(s.posts, postID)
	for key := range s.likes {
		if key.postID == postID {
			delete(s.likes, key)
		}
	}
	for key := range s.shares {
		if key.postID == postID {
			delete(s.shares, key)
		}
	}
	for commentID, comment := range s.comments {
		if comment.PostID == postID {
			delete(s.comments, commentID)
		}
	}
}

type fakePostRepo struct{ s *memStore }

func (r *fakePostRepo) CreatePost(post *models.Post) error {
	if r.s.down {
		return repositories.ErrNotConnected
	}
	r.s.nextPostID++
	post.ID = r.s.nextPostID
	post.CreatedAt = time.Now()
	copied := *post
	r.s.posts[post.ID] = &copied
	return nil
}

func (r *fakePostRepo) GetPostByID(id uint) (*models.Post, error) {
	if r.s.down {
		return nil, repositories.ErrNotConnected
	}
	post, ok := r.s.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *post
	return &copied, nil
}

func (r *fakePostRepo) DeletePost(id uint) error {
	if r.s.down {
		return repositories.ErrNotConnected
	}
	r.s.deletePostCascade(id)
	return nil
}

func (r *fakePostRepo) GetPosts(viewerID uint) ([]models.FeedPost, error) {
	if r.s.down {
		return nil, repositories.ErrNotConnected
	}
	return r.feed(viewerID, func(*models.Post) bool { return true }), nil
}

func (r *fakePostRepo) GetUserPosts(userID, viewerID uint) ([]models.FeedPost, error) {
	if r.s.down {
		return nil, repositories.ErrNotConnected
	}
	return r.feed(viewerID, func(p *models.Post) bool { return p.UserID == userID }), nil
}

func (r *fakePostRepo) feed(viewerID uint, keep func(*models.Post) bool) []models.FeedPost {
	feed := []models.FeedPost{}
	for _, post := range r.s.posts {
		if !keep(post) {
			continue
		}
		row := models.FeedPost{
			ID:        post.ID,
			UserID:    post.UserID,
			Content:   post.Content,
			CreatedAt: post.CreatedAt,
		}
		if author, ok := r.s.users[post.UserID]; ok {
			row.AuthorName = author.Name
		}
		for key := range r.s.likes {
			if key.postID == post.ID {
				row.LikeCount++
				if key.userID == viewerID {
					row.UserLiked = true
				}
			}
		}
		for key := range r.s.shares {
			if key.postID == post.ID {
				row.ShareCount++
				if key.userID == viewerID {
					row.UserShared = true
				}
			}
		}
		for _, comment := range r.s.comments {
			if comment.PostID == post.ID {
				row.CommentCount++
			}
		}
		feed = append(feed, row)
	}
	sort.Slice(feed, func(i, j int) bool { return feed[i].ID > feed[j].ID })
	return feed
}

type fakeLikeRepo struct{ s *memStore }

func (r *fakeLikeRepo) ToggleLike(userID, postID uint) (bool, int64, error) {
	return toggle(r.s, r.s.likes, userID, postID)
}

type fakeShareRepo struct{ s *memStore }

func (r *fakeShareRepo) ToggleShare(userID, postID uint) (bool, int64, error) {
	return toggle(r.s, r.s.shares, userID, postID)
}

func toggle(s *memStore, rows map[pair]bool, userID, postID uint) (bool, int64, error) {
	if s.down {
		return false, 0, repositories.ErrNotConnected
	}
	if _, ok := s.posts[postID]; !ok {
		return false, 0, foreignKeyViolationErr()
	}
	key := pair{userID, postID}
	present := rows[key]
	if present {
		delete(rows, key)
	} else {
		rows[key] = true
	}
	return !present, countFor(rows, postID), nil
}

func countFor(rows map[pair]bool, postID uint) int64 {
	var count int64
	for key := range rows {
		if key.postID == postID {
			count++
		}
	}
	return count
}

type fakeCommentRepo struct{ s *memStore }

func (r *fakeCommentRepo) CreateComment(comment *models.Comment) error {
	if r.s.down {
		return repositories.ErrNotConnected
	}
	if _, ok := r.s.posts[comment.PostID]; !ok {
		return foreignKeyViolationErr()
	}
	r.s.nextCommentID++
	comment.ID = r.s.nextCommentID
	comment.CreatedAt = time.Now()
	copied := *comment
	r.s.comments[comment.ID] = &copied
	return nil
}

func (r *fakeCommentRepo) GetCommentsByPostID(postID uint) ([]models.CommentView, error) {
	if r.s.down {
		return nil, repositories.ErrNotConnected
	}
	views := []models.CommentView{}
	for _, comment := range r.s.comments {
		if comment.PostID != postID {
			continue
		}
		view := models.CommentView{
			ID:        comment.ID,
			UserID:    comment.UserID,
			PostID:    comment.PostID,
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
		}
		if author, ok := r.s.users[comment.UserID]; ok {
			view.AuthorName = author.Name
		}
		views = append(views, view)
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	return views, nil
}

// testEnv wires the handlers against the in-memory fakes the same way
// the router wires them against Postgres.
type testEnv struct {
	store *memStore
	e     *echo.Echo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := newMemStore()

	e := echo.New()
	e.Validator = validators.NewValidator()

	sessions := session.NewManager("test-secret", false)
	userRepo := &fakeUserRepo{s: store}

	api := e.Group("/api")
	api.Use(middleware.SessionAuth(sessions, userRepo))

	NewAuthHandler(userRepo, sessions).RegisterAuthRoutes(api.Group("/auth"))
	NewPostHandler(store, &fakePostRepo{s: store}).RegisterPostRoutes(api)
	NewInteractionHandler(store, &fakeLikeRepo{s: store}, &fakeShareRepo{s: store}).RegisterInteractionRoutes(api)
	NewCommentHandler(store, &fakeCommentRepo{s: store}).RegisterCommentRoutes(api)
	NewProfileHandler(userRepo).RegisterProfileRoutes(api)

	return &testEnv{store: store, e: e}
}

func (env *testEnv) request(t *testing.T, method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

// register creates an account and returns the session cookies.
func (env *testEnv) register(t *testing.T, name, email, password string) []*http.Cookie {
	t.Helper()
	rec := env.request(t, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return rec.Result().Cookies()
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
