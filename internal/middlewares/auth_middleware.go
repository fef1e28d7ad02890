package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"salescrm/internal/utils"
)

// Authenticate verifies the Bearer access token and stores the caller's
// id and email in the gin context for handlers (created_by,
// uploaded_by).
func Authenticate(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing Authorization header"})
		return
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid Authorization format"})
		return
	}

	claims, err := utils.VerifyJWT(parts[1], utils.AccessTokenSecret)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
		return
	}

	c.Set("userId", claims.UserID)
	c.Set("userEmail", claims.Email)

	c.Next()
}
