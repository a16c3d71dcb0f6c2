package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/companion/internal/application/session"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
	"github.com/finance-tracker/companion/internal/integration/entrypoint/dto"
)

// ContextKey is a type for gin context keys.
type ContextKey string

const (
	// UserIDKey is the context key for the logged in user's ID.
	UserIDKey ContextKey = "user_id"
	// RequestIDKey is the context key for the request correlation id.
	RequestIDKey ContextKey = "request_id"
)

// RequireSession rejects requests while nobody is logged in.
func RequireSession(sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := sessions.UserID()
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Not logged in",
				Code:  string(domainerror.ErrCodeNotLoggedIn),
			})
			return
		}

		c.Set(string(UserIDKey), userID)
		c.Next()
	}
}

// GetUserID returns the user id set by RequireSession.
func GetUserID(c *gin.Context) (string, bool) {
	userID, ok := c.Get(string(UserIDKey))
	if !ok {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok
}
