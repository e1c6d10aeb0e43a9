package middleware

import "github.com/gin-gonic/gin"

// contextKey is a private type for request-context keys, preventing
// collisions with other packages.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
)

// GetUserIDFromContext retrieves the authenticated principal id set by the
// auth middleware. The boolean is false when the request is unauthenticated.
func GetUserIDFromContext(c *gin.Context) (int64, bool) {
	v := c.Request.Context().Value(userIDKey)
	if v == nil {
		return 0, false
	}
	userID, ok := v.(int64)
	return userID, ok
}
