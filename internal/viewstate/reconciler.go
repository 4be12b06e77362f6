// Package viewstate decides which profile a profile page is showing: the
// session user's own (editable) or someone else's (read-only).
package viewstate

import (
	"context"
	"errors"
	"log"

	"linkfeed/internal/models"
	"linkfeed/internal/session"
)

// API is the slice of the remote client the reconciler needs.
type API interface {
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	PostsByUser(ctx context.Context, email string) ([]models.Post, error)
}

// SessionRefresher persists a fresher profile copy for a session.
type SessionRefresher interface {
	Refresh(sessionID string, user *models.User, generation int64) error
}

// View is the reconciled state a profile page renders from.
type View struct {
	ProfileUser  models.User
	IsOwnProfile bool
	Posts        []models.Post
}

type Reconciler struct {
	api      API
	sessions SessionRefresher
}

func NewReconciler(apiClient API, sessions SessionRefresher) *Reconciler {
	return &Reconciler{api: apiClient, sessions: sessions}
}

// Resolve picks the viewed profile from the session and the optional target
// email carried in the URL.
//
// Viewing another user's profile never mutates the session; only the
// own-profile branch (no target email) re-fetches the session user's record
// and overwrites the stored copy with the server's. A failed fetch of the
// target degrades silently to the viewer's own profile.
func (r *Reconciler) Resolve(ctx context.Context, sess *session.Session, targetEmail string) (View, error) {
	if sess == nil {
		return View{}, session.ErrNoSession
	}

	view := View{ProfileUser: sess.User, IsOwnProfile: true}

	if targetEmail != "" {
		view.IsOwnProfile = targetEmail == sess.User.Email
		fetched, err := r.api.UserByEmail(ctx, targetEmail)
		if err != nil {
			log.Printf("[ERROR] Failed to load profile for %s: %v", targetEmail, err)
			view.ProfileUser = sess.User
			view.IsOwnProfile = true
		} else {
			view.ProfileUser = *fetched
		}
	} else {
		fetched, err := r.api.UserByEmail(ctx, sess.User.Email)
		if err != nil {
			log.Printf("[ERROR] Failed to reload own profile: %v", err)
		} else {
			view.ProfileUser = *fetched
			if err := r.sessions.Refresh(sess.ID, fetched, sess.Generation); err != nil {
				if !errors.Is(err, session.ErrStaleSession) {
					log.Printf("[ERROR] Failed to refresh session: %v", err)
				}
			}
		}
	}

	posts, err := r.api.PostsByUser(ctx, view.ProfileUser.Email)
	if err != nil {
		log.Printf("[ERROR] Failed to fetch posts for %s: %v", view.ProfileUser.Email, err)
	} else {
		view.Posts = posts
	}

	return view, nil
}
