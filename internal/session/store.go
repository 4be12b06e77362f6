// Package session holds the signed-in user's profile between requests. The
// browser carries only a JWT cookie naming a session row; the profile JSON
// lives server-side in sqlite. All transitions go through Login, Logout and
// Refresh, never through ad hoc writes.
package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"linkfeed/internal/models"
)

const (
	CookieName      = "linkfeed_session"
	sessionDuration = 24 * time.Hour
)

var (
	ErrNoSession = errors.New("no active session")
	// ErrStaleSession means another transition (logout, newer refresh) won;
	// the write was dropped.
	ErrStaleSession = errors.New("session generation out of date")
)

// Session is one signed-in user as seen by a single browser.
type Session struct {
	ID         string
	User       models.User
	Generation int64
	ExpiresAt  time.Time
}

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to session database: %w", err)
	}
	// A :memory: database exists per connection; keep the pool at one so
	// every caller sees the same tables. File-backed stores keep the
	// default pool.
	if strings.Contains(path, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	createSessionsTable := `
	CREATE TABLE IF NOT EXISTS sessions (
			"id" TEXT PRIMARY KEY,
			"user_json" TEXT NOT NULL,
			"generation" INTEGER NOT NULL DEFAULT 1,
			"created_at" DATETIME NOT NULL,
			"expires_at" DATETIME NOT NULL
	);`
	if _, err := db.Exec(createSessionsTable); err != nil {
		return nil, fmt.Errorf("creating sessions table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Login creates a session row for the user and returns the cookie token.
func (s *Store) Login(user *models.User) (string, error) {
	data, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("encoding session user: %w", err)
	}

	id := uuid.NewString()
	now := time.Now()
	_, err = s.db.Exec(`
		INSERT INTO sessions (id, user_json, generation, created_at, expires_at)
		VALUES (?, ?, 1, ?, ?)`, id, string(data), now, now.Add(sessionDuration))
	if err != nil {
		return "", fmt.Errorf("inserting session: %w", err)
	}

	return GenerateToken(id, user.Email, user.Username)
}

// Get resolves a cookie token to its session. Expired rows and invalid
// tokens both come back as ErrNoSession.
func (s *Store) Get(token string) (*Session, error) {
	claims, err := ValidateToken(token)
	if err != nil {
		return nil, ErrNoSession
	}

	row := s.db.QueryRow(`
		SELECT id, user_json, generation, expires_at
		FROM sessions
		WHERE id = ? AND expires_at > ?`, claims.SessionID, time.Now())

	var sess Session
	var userJSON string
	if err := row.Scan(&sess.ID, &userJSON, &sess.Generation, &sess.ExpiresAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	if err := json.Unmarshal([]byte(userJSON), &sess.User); err != nil {
		return nil, fmt.Errorf("decoding session user: %w", err)
	}
	return &sess, nil
}

// Refresh overwrites the stored profile with a fresher server copy. The
// generation check makes in-flight responses that outlived their session
// (or raced a newer refresh) no-ops instead of silent clobbers.
func (s *Store) Refresh(sessionID string, user *models.User, generation int64) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding session user: %w", err)
	}

	res, err := s.db.Exec(`
		UPDATE sessions
		SET user_json = ?, generation = generation + 1
		WHERE id = ? AND generation = ?`, string(data), sessionID, generation)
	if err != nil {
		return fmt.Errorf("updating session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating session: %w", err)
	}
	if n == 0 {
		return ErrStaleSession
	}
	return nil
}

// Logout destroys the session row. The cookie itself is cleared by the
// handler; a token pointing at a deleted row is just ErrNoSession.
func (s *Store) Logout(token string) error {
	claims, err := ValidateToken(token)
	if err != nil {
		return nil
	}
	if _, err := s.db.Exec("DELETE FROM sessions WHERE id = ?", claims.SessionID); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func (s *Store) CleanupExpired() error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE expires_at < ?", time.Now())
	if err != nil {
		return fmt.Errorf("cleaning up expired sessions: %w", err)
	}
	return nil
}
