// Package profile implements the edit-profile draft: a working copy of the
// editable fields that only reaches the session store when a whole-draft
// submit succeeds.
package profile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"linkfeed/internal/api"
	"linkfeed/internal/models"
	"linkfeed/internal/session"
)

var ErrHeadlineRequired = errors.New("headline is required")

// Draft holds the editable profile fields. Mutating a draft never touches
// the session user.
type Draft struct {
	Headline string
	Bio      string
	Location string
	Skills   []string
}

func DraftFromUser(u *models.User) Draft {
	return Draft{
		Headline: u.Headline,
		Bio:      u.Bio,
		Location: u.Location,
		Skills:   append([]string(nil), u.Skills...),
	}
}

// AddSkill appends a trimmed skill unless it is empty or already present
// (case-sensitive exact match). Reports whether the set changed; either way
// the input field is cleared by the caller.
func (d *Draft) AddSkill(raw string) bool {
	skill := strings.TrimSpace(raw)
	if skill == "" || d.HasSkill(skill) {
		return false
	}
	d.Skills = append(d.Skills, skill)
	return true
}

func (d *Draft) RemoveSkill(name string) {
	kept := d.Skills[:0]
	for _, s := range d.Skills {
		if s != name {
			kept = append(kept, s)
		}
	}
	d.Skills = kept
}

func (d *Draft) HasSkill(name string) bool {
	for _, s := range d.Skills {
		if s == name {
			return true
		}
	}
	return false
}

// API is the slice of the remote client the editor needs.
type API interface {
	UpdateProfile(ctx context.Context, req api.UpdateProfileRequest) (*models.User, error)
}

// SessionRefresher persists the server-returned user after a submit.
type SessionRefresher interface {
	Refresh(sessionID string, user *models.User, generation int64) error
}

type Editor struct {
	api      API
	sessions SessionRefresher
}

func NewEditor(apiClient API, sessions SessionRefresher) *Editor {
	return &Editor{api: apiClient, sessions: sessions}
}

// Submit sends the whole draft in one update call. On success the session
// store is overwritten with the server's returned user; on failure the
// caller keeps the draft editable. There is no partial save.
func (e *Editor) Submit(ctx context.Context, sess *session.Session, d Draft) (*models.User, error) {
	if strings.TrimSpace(d.Headline) == "" {
		return nil, ErrHeadlineRequired
	}

	updated, err := e.api.UpdateProfile(ctx, api.UpdateProfileRequest{
		UserID:   sess.User.ID,
		Headline: d.Headline,
		Bio:      d.Bio,
		Location: d.Location,
		Skills:   d.Skills,
	})
	if err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	if err := e.sessions.Refresh(sess.ID, updated, sess.Generation); err != nil {
		if !errors.Is(err, session.ErrStaleSession) {
			log.Printf("[ERROR] Failed to refresh session after profile update: %v", err)
		}
	}
	return updated, nil
}
