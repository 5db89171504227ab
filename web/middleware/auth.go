package middleware

import (
	"net/http"

	"publigo/web/service"
	"publigo/web/session"

	"github.com/gin-gonic/gin"
)

// CallerKey is the gin context key holding the authenticated user.
const CallerKey = "caller"

// AuthRequired rejects requests without a valid session and loads a fresh
// user record into the context for downstream handlers.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := session.GetLoginUserId(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		userService := service.UserService{}
		user, err := userService.GetUser(id)
		if err != nil {
			// Session refers to a deleted user; drop it.
			session.ClearSession(c)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		c.Set(CallerKey, user)
		c.Next()
	}
}
