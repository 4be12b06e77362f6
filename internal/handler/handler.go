// Package handler contains the Gin page and form-action handlers for the
// web front end. Each page handler plays the part the corresponding browser
// view used to: read the session, call the remote API, render.
package handler

import (
	"html/template"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"linkfeed/internal/api"
	"linkfeed/internal/feed"
	"linkfeed/internal/profile"
	"linkfeed/internal/session"
	"linkfeed/internal/viewstate"
)

type Handler struct {
	api           *api.Client
	store         *session.Store
	feed          *feed.Controller
	reconciler    *viewstate.Reconciler
	editor        *profile.Editor
	templates     map[string]*template.Template
	secureCookies bool
}

func New(apiClient *api.Client, store *session.Store, templatesDir string, secureCookies bool) *Handler {
	return &Handler{
		api:           apiClient,
		store:         store,
		feed:          feed.NewController(apiClient),
		reconciler:    viewstate.NewReconciler(apiClient, store),
		editor:        profile.NewEditor(apiClient, store),
		templates:     loadTemplates(templatesDir),
		secureCookies: secureCookies,
	}
}

func loadTemplates(dir string) map[string]*template.Template {
	templates := make(map[string]*template.Template)
	pages := []string{
		"signup.html", "signin.html", "home.html",
		"profile.html", "edit_profile.html", "delete_post.html",
	}

	funcs := template.FuncMap{
		"timeago": func(t time.Time) string {
			return feed.TimeAgo(time.Now(), t)
		},
		"initials": feed.AvatarInitials,
	}

	for _, page := range pages {
		templates[page] = template.Must(
			template.New("").Funcs(funcs).ParseFiles(
				filepath.Join(dir, "base.html"),
				filepath.Join(dir, page),
			))
	}
	return templates
}

func (h *Handler) render(c *gin.Context, status int, page string, data gin.H) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := h.templates[page].ExecuteTemplate(c.Writer, "base", data); err != nil {
		log.Printf("[ERROR] Failed to render %s: %v", page, err)
	}
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(session.CookieName, token, int(24*time.Hour.Seconds()), "/", "", h.secureCookies, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(session.CookieName, "", -1, "/", "", h.secureCookies, true)
}

// Root resolves the conflicting default landings in favor of both: signed-in
// visitors go to the feed, everyone else to sign-up.
func (h *Handler) Root(c *gin.Context) {
	if token, err := c.Cookie(session.CookieName); err == nil {
		if _, err := h.store.Get(token); err == nil {
			c.Redirect(http.StatusSeeOther, "/home")
			return
		}
	}
	c.Redirect(http.StatusSeeOther, "/signup")
}
