package auth

import (
	"net/http"
	"strings"

	"huddle/backend/internal/session"
	"huddle/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// Middleware enforces authentication: a valid Bearer token whose session is
// still live. On success the user and session IDs are stored in the context.
func Middleware(tokens *jwt.Manager, sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, sessionID, ok := identify(c, tokens, sessions)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			return
		}
		c.Set("userID", userID)
		c.Set("sessionID", sessionID)
		c.Next()
	}
}

// OptionalMiddleware sets the user ID if a valid live token is present, but
// does not fail when it is missing or invalid. Used by GET /session, which
// reports "nobody" rather than erroring.
func OptionalMiddleware(tokens *jwt.Manager, sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, sessionID, ok := identify(c, tokens, sessions); ok {
			c.Set("userID", userID)
			c.Set("sessionID", sessionID)
		}
		c.Next()
	}
}

func identify(c *gin.Context, tokens *jwt.Manager, sessions *session.Store) (userID, sessionID string, ok bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", "", false
	}

	userID, sessionID, err := tokens.Parse(parts[1])
	if err != nil {
		return "", "", false
	}

	// The token is only as alive as its session entry.
	stored, err := sessions.UserID(c.Request.Context(), sessionID)
	if err != nil || stored != userID {
		return "", "", false
	}
	return userID, sessionID, true
}
