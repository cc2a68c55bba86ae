// Package client is a small Go client for the ProConnect API. Toggle
// operations keep a local per-post interaction state that is updated
// optimistically and reconciled against the server's response.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"

	"github.com/proconnect-app/backend/internal/models"
)

// PostState is the client's local view of its own interactions with a
// post, the state the optimistic protocol snapshots and reconciles.
type PostState struct {
	Liked      bool
	Shared     bool
	LikeCount  int64
	ShareCount int64
}

// ToggleResponse is the server's authoritative answer to a toggle call.
type ToggleResponse struct {
	Success    bool   `json:"success"`
	Action     string `json:"action"`
	Liked      bool   `json:"liked"`
	LikeCount  int64  `json:"likeCount"`
	Shared     bool   `json:"shared"`
	ShareCount int64  `json:"shareCount"`
}

// APIError is a non-2xx response decoded from the {"error": ...} envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client talks to a ProConnect server. The session cookie issued at login
// lives in the underlying cookie jar.
type Client struct {
	baseURL string
	http    *http.Client
	posts   map[uint]*PostState
}

// New creates a Client for the given server base URL.
func New(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Jar: jar},
		posts:   make(map[uint]*PostState),
	}
}

// Login authenticates and stores the session cookie for later calls.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/api/auth/login", body, nil)
}

// GetPosts fetches the global feed and seeds the local per-post state
// from the server's counts and flags.
func (c *Client) GetPosts(ctx context.Context) ([]models.FeedPost, error) {
	var posts []models.FeedPost
	if err := c.do(ctx, http.MethodGet, "/api/posts", nil, &posts); err != nil {
		return nil, err
	}
	for _, p := range posts {
		c.posts[p.ID] = &PostState{
			Liked:      p.UserLiked,
			Shared:     p.UserShared,
			LikeCount:  p.LikeCount,
			ShareCount: p.ShareCount,
		}
	}
	return posts, nil
}

// PostState returns the local interaction state for a post, creating a
// zero state for posts the client has not seen.
func (c *Client) PostState(postID uint) *PostState {
	state, ok := c.posts[postID]
	if !ok {
		state = &PostState{}
		c.posts[postID] = state
	}
	return state
}

// ToggleLike optimistically flips the local liked flag and count, calls
// the server, and reconciles: server truth on success, the pre-call
// snapshot on failure.
func (c *Client) ToggleLike(ctx context.Context, postID uint) error {
	state := c.PostState(postID)
	return Reconcile(state,
		func(s PostState) PostState {
			if s.Liked {
				s.Liked = false
				s.LikeCount--
			} else {
				s.Liked = true
				s.LikeCount++
			}
			return s
		},
		func() (PostState, error) {
			var resp ToggleResponse
			path := fmt.Sprintf("/api/posts/%d/like", postID)
			if err := c.do(ctx, http.MethodPost, path, nil, &resp); err != nil {
				return PostState{}, err
			}
			next := *state
			next.Liked = resp.Liked
			next.LikeCount = resp.LikeCount
			return next, nil
		})
}

// ToggleShare is ToggleLike for the share state.
func (c *Client) ToggleShare(ctx context.Context, postID uint) error {
	state := c.PostState(postID)
	return Reconcile(state,
		func(s PostState) PostState {
			if s.Shared {
				s.Shared = false
				s.ShareCount--
			} else {
				s.Shared = true
				s.ShareCount++
			}
			return s
		},
		func() (PostState, error) {
			var resp ToggleResponse
			path := fmt.Sprintf("/api/posts/%d/share", postID)
			if err := c.do(ctx, http.MethodPost, path, nil, &resp); err != nil {
				return PostState{}, err
			}
			next := *state
			next.Shared = resp.Shared
			next.ShareCount = resp.ShareCount
			return next, nil
		})
}

// do performs a JSON request against the API and decodes the response
// into out when it is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var envelope struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		return &APIError{Status: resp.StatusCode, Message: envelope.Error}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
