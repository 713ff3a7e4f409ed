package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"expense_tracker/internal/domain" // Importing domain models
	"expense_tracker/internal/utils"  // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// JWTAuthMiddleware validates bearer tokens and resolves the subject email
// to a live user row on every request
func JWTAuthMiddleware(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		email, err := utils.ParseToken(tokenStr, secret)      // Parse and validate the token
		if err != nil {
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		var user domain.User // Fetch the user the token was issued for
		// A valid token for a user that no longer exists is still unauthorized
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set("userID", user.ID)   // Store userID in context
		c.Set("email", user.Email) // Store email in context
		c.Next()                   // Proceed to the next handler
	}
}
