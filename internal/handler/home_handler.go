package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"linkfeed/internal/feed"
	"linkfeed/internal/middleware"
	"linkfeed/internal/models"
)

// Home renders the global feed with the compose box.
func (h *Handler) Home(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	h.feed.Load(c.Request.Context())
	h.render(c, http.StatusOK, "home.html", gin.H{
		"Title":    "Feed",
		"User":     sess.User,
		"Posts":    h.feed.Posts(),
		"PostText": "",
	})
}

// CreatePost publishes the composed post. On failure the feed page is
// re-rendered with the alert and the composed text left intact.
func (h *Handler) CreatePost(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	content := c.PostForm("content")

	_, err := h.feed.Create(c.Request.Context(), sess, content)
	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, "/home")
	case errors.Is(err, feed.ErrEmptyContent), errors.Is(err, feed.ErrBusy):
		c.Redirect(http.StatusSeeOther, "/home")
	default:
		log.Printf("[ERROR] Failed to create post: %v", err)
		h.render(c, http.StatusBadGateway, "home.html", gin.H{
			"Title":    "Feed",
			"User":     sess.User,
			"Posts":    h.feed.Posts(),
			"PostText": content,
			"Error":    "Failed to create post. Please try again.",
		})
	}
}

// LikePost toggles a like. Failures are logged only; the feed simply keeps
// its previous state.
func (h *Handler) LikePost(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	if _, err := h.feed.Like(c.Request.Context(), sess, c.Param("id")); err != nil {
		if !errors.Is(err, feed.ErrBusy) {
			log.Printf("[ERROR] Failed to like post: %v", err)
		}
	}
	c.Redirect(http.StatusSeeOther, "/home")
}

// DeletePostPage is the explicit confirmation step before a delete.
func (h *Handler) DeletePostPage(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	postID := c.Param("id")

	var post *models.Post
	for _, p := range h.feed.Posts() {
		if p.ID == postID {
			post = &p
			break
		}
	}

	h.render(c, http.StatusOK, "delete_post.html", gin.H{
		"Title":  "Delete post",
		"User":   sess.User,
		"PostID": postID,
		"Post":   post,
	})
}

func (h *Handler) DeletePost(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	err := h.feed.Delete(c.Request.Context(), sess, c.Param("id"))
	switch {
	case err == nil, errors.Is(err, feed.ErrBusy):
		c.Redirect(http.StatusSeeOther, "/home")
	default:
		log.Printf("[ERROR] Failed to delete post: %v", err)
		h.render(c, http.StatusBadGateway, "home.html", gin.H{
			"Title":    "Feed",
			"User":     sess.User,
			"Posts":    h.feed.Posts(),
			"PostText": "",
			"Error":    "Failed to delete post. You can only delete your own posts.",
		})
	}
}
