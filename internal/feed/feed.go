// Package feed maintains the in-memory global post list and applies local
// mutations after each remote call resolves.
package feed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"linkfeed/internal/api"
	"linkfeed/internal/models"
	"linkfeed/internal/session"
)

var (
	ErrEmptyContent = errors.New("post content is empty")
	ErrNoUser       = errors.New("no signed-in user")
	// ErrBusy means the same session already has this action in flight.
	// The duplicate submission is rejected instead of sent twice.
	ErrBusy = errors.New("action already in progress")
)

// API is the slice of the remote client the feed needs.
type API interface {
	Posts(ctx context.Context) ([]models.Post, error)
	CreatePost(ctx context.Context, req api.CreatePostRequest) (*models.Post, error)
	LikePost(ctx context.Context, postID, userID string) (*models.Post, error)
	DeletePost(ctx context.Context, postID, userID string) error
}

// Controller holds the ordered post sequence, newest first. List loads
// replace it wholesale; create/like/delete splice in the server's response.
type Controller struct {
	api API

	mu       sync.Mutex
	posts    []models.Post
	inflight map[string]struct{}
}

func NewController(apiClient API) *Controller {
	return &Controller{
		api:      apiClient,
		inflight: make(map[string]struct{}),
	}
}

// Load fetches the whole feed and replaces the local sequence. On failure
// the previous sequence is kept and the error only logged.
func (c *Controller) Load(ctx context.Context) {
	posts, err := c.api.Posts(ctx)
	if err != nil {
		log.Printf("[ERROR] Failed to fetch posts: %v", err)
		return
	}
	c.mu.Lock()
	c.posts = posts
	c.mu.Unlock()
}

// Posts returns a snapshot of the current sequence.
func (c *Controller) Posts() []models.Post {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Post, len(c.posts))
	copy(out, c.posts)
	return out
}

// Create publishes a new post authored by the session user and prepends the
// server-returned post. The author name, headline title and avatar initials
// are snapshotted from the profile at post time.
func (c *Controller) Create(ctx context.Context, sess *session.Session, content string) (*models.Post, error) {
	if sess == nil {
		return nil, ErrNoUser
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	key := sess.ID + ":create"
	if !c.acquire(key) {
		return nil, ErrBusy
	}
	defer c.release(key)

	title := sess.User.Headline
	if title == "" {
		title = "Professional"
	}
	post, err := c.api.CreatePost(ctx, api.CreatePostRequest{
		UserID:    sess.User.ID,
		UserEmail: sess.User.Email,
		Author:    sess.User.Username,
		Title:     title,
		Avatar:    AvatarInitials(sess.User.Username),
		Content:   content,
	})
	if err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	c.mu.Lock()
	c.posts = append([]models.Post{*post}, c.posts...)
	c.mu.Unlock()
	return post, nil
}

// Like toggles the session user's like and replaces the affected post
// wholesale with the server's copy. No optimistic pre-update.
func (c *Controller) Like(ctx context.Context, sess *session.Session, postID string) (*models.Post, error) {
	if sess == nil {
		return nil, ErrNoUser
	}

	key := sess.ID + ":like:" + postID
	if !c.acquire(key) {
		return nil, ErrBusy
	}
	defer c.release(key)

	post, err := c.api.LikePost(ctx, postID, sess.User.ID)
	if err != nil {
		return nil, fmt.Errorf("liking post: %w", err)
	}

	c.mu.Lock()
	for i := range c.posts {
		if c.posts[i].ID == postID {
			c.posts[i] = *post
			break
		}
	}
	c.mu.Unlock()
	return post, nil
}

// Delete removes a post from the server, then from the local sequence.
// Ownership is enforced server-side only; on rejection the sequence is
// left unchanged.
func (c *Controller) Delete(ctx context.Context, sess *session.Session, postID string) error {
	if sess == nil {
		return ErrNoUser
	}

	key := sess.ID + ":delete:" + postID
	if !c.acquire(key) {
		return ErrBusy
	}
	defer c.release(key)

	if err := c.api.DeletePost(ctx, postID, sess.User.ID); err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}

	c.mu.Lock()
	kept := c.posts[:0]
	for _, p := range c.posts {
		if p.ID != postID {
			kept = append(kept, p)
		}
	}
	c.posts = kept
	c.mu.Unlock()
	return nil
}

func (c *Controller) acquire(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inflight[key]; busy {
		return false
	}
	c.inflight[key] = struct{}{}
	return true
}

func (c *Controller) release(key string) {
	c.mu.Lock()
	delete(c.inflight, key)
	c.mu.Unlock()
}

// TimeAgo renders a post age the way the feed displays it. Recomputed on
// every render, never cached.
func TimeAgo(now, posted time.Time) string {
	seconds := int(now.Sub(posted).Seconds())
	switch {
	case seconds < 60:
		return "Just now"
	case seconds < 3600:
		return fmt.Sprintf("%dm", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%dh", seconds/3600)
	case seconds < 604800:
		return fmt.Sprintf("%dd", seconds/86400)
	default:
		return fmt.Sprintf("%dw", seconds/604800)
	}
}

// AvatarInitials derives the two-letter avatar badge from a username.
func AvatarInitials(username string) string {
	runes := []rune(username)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return strings.ToUpper(string(runes))
}
