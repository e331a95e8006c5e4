package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/liliang-cn/claimwizard/internal/service"
)

// SessionKey is the gin context key holding the session id
const SessionKey = "session_id"

// SessionOptions configures the session cookie
type SessionOptions struct {
	CookieName string
	Secure     bool
	MaxAge     int
}

// Session resolves the session cookie to a live session, creating one
// when the cookie is missing or stale. The cookie is re-issued with a
// fresh MaxAge on every request.
func Session(sessions *service.SessionService, opts SessionOptions, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, _ := c.Cookie(opts.CookieName)

		id, created, err := sessions.Ensure(c.Request.Context(), cookie)
		if err != nil {
			logger.Error("failed to resolve session", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
			return
		}

		if created {
			logger.Debug("session cookie issued", zap.String("session_id", id))
		}
		// refreshed on every request
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(opts.CookieName, id, opts.MaxAge, "/", "", opts.Secure, true)

		c.Set(SessionKey, id)
		c.Next()
	}
}

// SessionID returns the session id resolved by Session
func SessionID(c *gin.Context) string {
	return c.GetString(SessionKey)
}
