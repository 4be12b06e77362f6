package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"linkfeed/internal/session"
)

const sessionKey = "session"

// RequireSession guards authenticated pages: a request without a valid
// session cookie is redirected to the sign-in page.
func RequireSession(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err != nil {
			c.Redirect(http.StatusSeeOther, "/signin")
			c.Abort()
			return
		}

		sess, err := store.Get(token)
		if err != nil {
			c.Redirect(http.StatusSeeOther, "/signin")
			c.Abort()
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// CurrentSession returns the session attached by RequireSession, or nil on
// unguarded routes.
func CurrentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}
