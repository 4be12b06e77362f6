// Package api is the HTTP client for the remote social API that owns all
// persistence. One method per endpoint, no retries, no timeout policy.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"linkfeed/internal/models"
)

// Error carries the server-provided message for a failed call, so handlers
// can show it to the user (signin) or replace it with a generic alert.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: unexpected status %d", e.StatusCode)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreatePostRequest struct {
	UserID    string `json:"userId"`
	UserEmail string `json:"userEmail"`
	Author    string `json:"author"`
	Title     string `json:"title"`
	Avatar    string `json:"avatar"`
	Content   string `json:"content"`
}

type UpdateProfileRequest struct {
	UserID   string   `json:"userId"`
	Headline string   `json:"headline"`
	Bio      string   `json:"bio"`
	Location string   `json:"location"`
	Skills   []string `json:"skills"`
}

type userResponse struct {
	User *models.User `json:"user"`
}

type postResponse struct {
	Post *models.Post `json:"post"`
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) (*models.User, error) {
	var res userResponse
	if err := c.do(ctx, http.MethodPost, "/api/signup", req, &res); err != nil {
		return nil, err
	}
	return res.User, nil
}

func (c *Client) Signin(ctx context.Context, req SigninRequest) (*models.User, error) {
	var res userResponse
	if err := c.do(ctx, http.MethodPost, "/api/signin", req, &res); err != nil {
		return nil, err
	}
	return res.User, nil
}

// Posts returns the global feed, newest first, as ordered by the server.
func (c *Client) Posts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := c.do(ctx, http.MethodGet, "/api/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	var res postResponse
	if err := c.do(ctx, http.MethodPost, "/api/posts", req, &res); err != nil {
		return nil, err
	}
	return res.Post, nil
}

// LikePost toggles the calling user's like on a post and returns the
// server's updated copy of the whole post.
func (c *Client) LikePost(ctx context.Context, postID, userID string) (*models.Post, error) {
	var res postResponse
	path := "/api/posts/" + url.PathEscape(postID) + "/like"
	body := map[string]string{"userId": userID}
	if err := c.do(ctx, http.MethodPut, path, body, &res); err != nil {
		return nil, err
	}
	return res.Post, nil
}

// DeletePost deletes a post. Ownership is enforced server-side; a non-author
// gets an *Error back.
func (c *Client) DeletePost(ctx context.Context, postID, userID string) error {
	path := "/api/posts/" + url.PathEscape(postID)
	body := map[string]string{"userId": userID}
	return c.do(ctx, http.MethodDelete, path, body, nil)
}

func (c *Client) PostsByUser(ctx context.Context, email string) ([]models.Post, error) {
	var posts []models.Post
	path := "/api/posts/user/" + url.PathEscape(email)
	if err := c.do(ctx, http.MethodGet, path, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var res userResponse
	path := "/api/user-by-email/" + url.PathEscape(email)
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res.User, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*models.User, error) {
	var res userResponse
	if err := c.do(ctx, http.MethodPut, "/api/update-profile", req, &res); err != nil {
		return nil, err
	}
	return res.User, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}
	var body struct {
		Message string `json:"message"`
		ErrMsg  string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Message != "" {
			apiErr.Message = body.Message
		} else {
			apiErr.Message = body.ErrMsg
		}
	}
	return apiErr
}
