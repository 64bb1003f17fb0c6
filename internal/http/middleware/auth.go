// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file gates the admin surface. The session token rides in an HTTP-only
// cookie; RequireAdmin resolves it to a session and rejects anyone who is not
// the configured admin.
package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CalebBennett-Harper/locus/internal/domain"
)

const (
	// SessionCookie is the name of the admin session cookie.
	SessionCookie = "locus_session"
	// sessionKey is the Gin context key holding the resolved *domain.Session.
	sessionKey = "session"
)

// SessionResolver resolves a session cookie value and decides admin status.
// Implemented by services.AuthService.
type SessionResolver interface {
	Session(ctx context.Context, sessionID string) (*domain.Session, error)
	IsAdmin(sess *domain.Session) bool
}

// RequireAdmin returns a Gin middleware that admits only the configured
// admin. Requests without a live session get 401; a live session belonging
// to anyone else gets 403. The resolved session is stored in the context for
// handlers that want the caller's email.
func RequireAdmin(auth SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(SessionCookie)
		sess, err := auth.Session(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"request_id": c.Writer.Header().Get(requestIDHeader),
				"code":       "internal_error",
				"message":    "internal server error",
			})
			return
		}
		if sess == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"request_id": c.Writer.Header().Get(requestIDHeader),
				"code":       "unauthorized",
				"message":    "authentication required",
			})
			return
		}
		if !auth.IsAdmin(sess) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"request_id": c.Writer.Header().Get(requestIDHeader),
				"code":       "forbidden",
				"message":    "admin access required",
			})
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// SessionFrom returns the session stored by RequireAdmin, nil when absent.
func SessionFrom(c *gin.Context) *domain.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*domain.Session); ok {
			return s
		}
	}
	return nil
}
