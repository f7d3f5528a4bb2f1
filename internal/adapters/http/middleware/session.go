package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/quotebox/internal/platform/logging"
)

// SessionCookieName names the cookie that scopes the last shown quote.
const SessionCookieName = "quote_session"

// ContextKeySession is the gin.Context key holding the session ID.
const ContextKeySession = "quote_session"

// SessionOptions configures the session cookie.
type SessionOptions struct {
	// Secure marks the cookie HTTPS-only.
	Secure bool

	// Path scopes the cookie. Defaults to "/".
	Path string
}

// Session returns middleware that gives every client a browser session.
// The quote_session cookie is reused when it holds a UUID. Otherwise a new
// one is issued without Max-Age, so it ends when the browser session ends.
func Session(opts SessionOptions) gin.HandlerFunc {
	path := opts.Path
	if path == "" {
		path = "/"
	}

	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookieName)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()

			http.SetCookie(c.Writer, &http.Cookie{
				Name:     SessionCookieName,
				Value:    id,
				Path:     path,
				Secure:   opts.Secure,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		c.Set(ContextKeySession, id)

		c.Request = c.Request.WithContext(logging.WithSession(c.Request.Context(), id))

		c.Next()
	}
}

// GetSessionID returns the session ID, or "" if Session did not run.
func GetSessionID(c *gin.Context) string {
	return c.GetString(ContextKeySession)
}
