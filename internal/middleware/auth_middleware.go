package middleware

import (
	"net/http"
	"strings"

	"invdash_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the access token and loads the caller's identity
// into the context. The token is taken from the Authorization header first,
// then from the auth cookie set at login.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""

		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
		if tokenString == "" {
			if cookie, err := c.Cookie(utils.AuthCookieName); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			utils.RespondFailure(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			utils.RespondFailure(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("username", claims.Username)
		c.Next()
	}
}

// GetUserID reads the authenticated user's ID from the context.
func GetUserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	userID, ok := value.(int64)
	return userID, ok
}
