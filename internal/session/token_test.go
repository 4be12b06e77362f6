package session

import (
	"os"
	"testing"

	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "configured-session-key"

// TestMain sets the key after package init, the same way main loads the
// environment before the first session is issued.
func TestMain(m *testing.M) {
	os.Setenv("SESSION_SECRET_KEY", testSecret)
	os.Exit(m.Run())
}

func TestSigningKeyReadFromEnvironment(t *testing.T) {
	token, err := GenerateToken("sid-1", "alice@example.com", "alice")
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	claims := &Claims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	}); err != nil {
		t.Fatalf("token does not verify against the configured key: %v", err)
	}
	if claims.SessionID != "sid-1" {
		t.Errorf("unexpected session id %q", claims.SessionID)
	}

	if _, err := jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return []byte("default_secret_key"), nil
	}); err == nil {
		t.Error("token verifies against the fallback key despite SESSION_SECRET_KEY being set")
	}
}
