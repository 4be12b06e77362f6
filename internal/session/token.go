package session

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// signingKey resolves on first use rather than at package init, so a key
// loaded into the environment by godotenv in main is picked up.
var signingKey = sync.OnceValue(func() []byte {
	key := os.Getenv("SESSION_SECRET_KEY")
	if key == "" {
		log.Println("Warning: SESSION_SECRET_KEY environment variable is not set. Using default key.")
		return []byte("default_secret_key")
	}
	return []byte(key)
})

// Claims is the JWT payload of the session cookie. It identifies a row in
// the session store plus a lightweight snapshot for logging.
type Claims struct {
	SessionID string `json:"sid"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	jwt.RegisteredClaims
}

func GenerateToken(sessionID, email, username string) (string, error) {
	expirationTime := time.Now().Add(sessionDuration)
	claims := &Claims{
		SessionID: sessionID,
		Email:     email,
		Username:  username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "linkfeed-web",
			Subject:   "user_session_token",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(signingKey())
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return signingKey(), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
