package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"linkfeed/internal/feed"
	"linkfeed/internal/middleware"
	"linkfeed/internal/models"
)

// profileDisplay carries the rendered header fields with the placeholder
// fallbacks the profile page shows for sparse accounts.
type profileDisplay struct {
	Name        string
	Headline    string
	Location    string
	Avatar      string
	Bio         string
	Connections int
	Skills      []string
}

var defaultSkills = []string{
	"JavaScript", "React", "Node.js", "MongoDB",
	"Express", "Tailwind CSS", "Git", "REST APIs",
}

const defaultBio = "Passionate professional with expertise in building innovative solutions. " +
	"Always eager to learn and contribute to meaningful projects. Let's connect and collaborate!"

func displayProfile(u models.User) profileDisplay {
	d := profileDisplay{
		Name:        u.Username,
		Headline:    u.Headline,
		Location:    u.Location,
		Bio:         u.Bio,
		Connections: u.Connections,
		Skills:      u.Skills,
	}
	if d.Name == "" {
		d.Name = "Your Name"
	}
	if d.Headline == "" {
		d.Headline = "Professional | Tech Enthusiast"
	}
	if d.Location == "" {
		d.Location = "San Francisco Bay Area"
	}
	if d.Connections == 0 {
		d.Connections = 500
	}
	if d.Bio == "" {
		d.Bio = defaultBio
	}
	if len(d.Skills) == 0 {
		d.Skills = defaultSkills
	}
	if u.Username != "" {
		d.Avatar = feed.AvatarInitials(u.Username)
	} else {
		d.Avatar = "YU"
	}
	return d
}

// Profile renders either the session user's own profile (with edit controls)
// or, given a ?user=<email> query, someone else's read-only one.
func (h *Handler) Profile(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	view, err := h.reconciler.Resolve(c.Request.Context(), sess, c.Query("user"))
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/signin")
		return
	}

	h.render(c, http.StatusOK, "profile.html", gin.H{
		"Title":        view.ProfileUser.Username,
		"User":         sess.User,
		"ProfileUser":  view.ProfileUser,
		"Display":      displayProfile(view.ProfileUser),
		"IsOwnProfile": view.IsOwnProfile,
		"Posts":        view.Posts,
	})
}
