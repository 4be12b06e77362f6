package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"linkfeed/internal/api"
	"linkfeed/internal/session"
)

const minPasswordLength = 6

func (h *Handler) SignupPage(c *gin.Context) {
	h.render(c, http.StatusOK, "signup.html", gin.H{"Title": "Join now", "Username": "", "Email": ""})
}

// Signup creates an account on the remote API. Success shows a confirmation
// banner and redirects to sign-in after a short delay; it never
// auto-authenticates the new user.
func (h *Handler) Signup(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	data := gin.H{"Title": "Join now", "Username": username, "Email": email}

	if username == "" || email == "" || password == "" {
		data["Error"] = "Username, email and password are required."
		h.render(c, http.StatusBadRequest, "signup.html", data)
		return
	}
	if len(password) < minPasswordLength {
		data["Error"] = "Password must be at least 6 characters."
		h.render(c, http.StatusBadRequest, "signup.html", data)
		return
	}

	_, err := h.api.Signup(c.Request.Context(), api.SignupRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		log.Printf("[ERROR] Signup failed: %v", err)
		data["Error"] = serverMessage(err, "Signup failed. Please try again.")
		h.render(c, http.StatusBadGateway, "signup.html", data)
		return
	}

	data["Success"] = "Account created successfully! Redirecting to sign in..."
	data["RedirectTo"] = "/signin"
	h.render(c, http.StatusOK, "signup.html", data)
}

func (h *Handler) SigninPage(c *gin.Context) {
	h.render(c, http.StatusOK, "signin.html", gin.H{"Title": "Sign in", "Email": ""})
}

// Signin authenticates against the remote API, stores the returned user as
// the session and moves on to the feed.
func (h *Handler) Signin(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	data := gin.H{"Title": "Sign in", "Email": email}

	if email == "" || password == "" {
		data["Error"] = "Email and password are required."
		h.render(c, http.StatusBadRequest, "signin.html", data)
		return
	}

	user, err := h.api.Signin(c.Request.Context(), api.SigninRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		log.Printf("[ERROR] Signin failed: %v", err)
		data["Error"] = serverMessage(err, "Sign in failed. Please try again.")
		h.render(c, http.StatusUnauthorized, "signin.html", data)
		return
	}

	token, err := h.store.Login(user)
	if err != nil {
		log.Printf("[ERROR] Failed to create session: %v", err)
		data["Error"] = "Sign in failed. Please try again."
		h.render(c, http.StatusInternalServerError, "signin.html", data)
		return
	}

	h.setSessionCookie(c, token)
	c.Redirect(http.StatusSeeOther, "/home")
}

func (h *Handler) Logout(c *gin.Context) {
	if token, err := c.Cookie(session.CookieName); err == nil {
		if err := h.store.Logout(token); err != nil {
			log.Printf("[ERROR] Failed to destroy session: %v", err)
		}
	}
	h.clearSessionCookie(c)
	c.Redirect(http.StatusSeeOther, "/signin")
}

// serverMessage prefers the remote API's message over the generic fallback.
func serverMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
