package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated user's ID in the Gin context.
// Using a custom type prevents collisions.
const userIDKey = contextKey("userID")

// roleKey stores the role claim of the authenticated identity.
const roleKey = contextKey("role")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		if userID, ok := c.Request.Context().Value(userIDKey).(string); ok {
			return userID, true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}

// GetRoleFromContext retrieves the role claim of the authenticated identity.
func GetRoleFromContext(c *gin.Context) (string, bool) {
	if role, ok := c.Get(string(roleKey)); ok {
		s, ok := role.(string)
		return s, ok
	}
	role, ok := c.Request.Context().Value(roleKey).(string)
	return role, ok
}
