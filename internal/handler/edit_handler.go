package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"linkfeed/internal/middleware"
	"linkfeed/internal/profile"
)

// EditProfilePage seeds the draft form from the session user's fields.
func (h *Handler) EditProfilePage(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	draft := profile.DraftFromUser(&sess.User)
	h.render(c, http.StatusOK, "edit_profile.html", gin.H{
		"Title": "Edit profile",
		"User":  sess.User,
		"Draft": draft,
	})
}

// EditProfileAction handles every submit of the edit form. The draft round
// trips through hidden form fields, so adding or removing a skill only
// re-renders the form; nothing reaches the session until a save succeeds.
func (h *Handler) EditProfileAction(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	draft := profile.Draft{
		Headline: c.PostForm("headline"),
		Bio:      c.PostForm("bio"),
		Location: c.PostForm("location"),
		Skills:   c.PostFormArray("skills"),
	}

	data := gin.H{"Title": "Edit profile", "User": sess.User}

	if skill := c.PostForm("remove_skill"); skill != "" {
		draft.RemoveSkill(skill)
		data["Draft"] = draft
		h.render(c, http.StatusOK, "edit_profile.html", data)
		return
	}

	if c.PostForm("action") == "add_skill" {
		// Duplicate or empty input is a no-op on the set; the input field
		// is cleared either way.
		draft.AddSkill(c.PostForm("new_skill"))
		data["Draft"] = draft
		h.render(c, http.StatusOK, "edit_profile.html", data)
		return
	}

	_, err := h.editor.Submit(c.Request.Context(), sess, draft)
	if err != nil {
		data["Draft"] = draft
		if errors.Is(err, profile.ErrHeadlineRequired) {
			data["Error"] = "Headline is required."
			h.render(c, http.StatusBadRequest, "edit_profile.html", data)
			return
		}
		log.Printf("[ERROR] Failed to update profile: %v", err)
		data["Error"] = "Failed to update profile"
		h.render(c, http.StatusBadGateway, "edit_profile.html", data)
		return
	}

	data["Draft"] = draft
	data["Success"] = "Profile updated successfully!"
	data["RedirectTo"] = "/profile"
	h.render(c, http.StatusOK, "edit_profile.html", data)
}
