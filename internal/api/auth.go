package api

import (
	"net/http" // HTTP status codes
	"time"     // Token TTL

	"expense_tracker/internal/domain" // Importing domain models
	"expense_tracker/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// RegisterRequest is the registration payload
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"` // Email must be provided and well-formed
	Password string `json:"password" binding:"required"`    // Password must be provided
}

// LoginRequest is the login form payload (OAuth2-style username/password)
type LoginRequest struct {
	Username string `form:"username" binding:"required"` // Username carries the email
	Password string `form:"password" binding:"required"` // Password must be provided
}

// TokenResponse is the login success payload
type TokenResponse struct {
	AccessToken string `json:"access_token"` // Signed bearer token
	TokenType   string `json:"token_type"`   // Always "bearer"
}

// RegisterHandler creates a new user account
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var existing domain.User // Pre-check for a taken email
		if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			// If email exists, return conflict
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		// Hash the password and create the user
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user := domain.User{Email: req.Email, HashedPassword: hash}
		// The unique index on email backstops the pre-check under races
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		// Log successful registration
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,    // User ID
			"email":   user.Email, // Registered email
		}).Info("User registered")
		// Return the created account, never the hash
		c.JSON(http.StatusCreated, gin.H{"id": user.ID, "email": user.Email})
	}
}

// LoginHandler authenticates a user and returns a bearer token
func LoginHandler(db *gorm.DB, jwtSecret string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind form request to struct
		if err := c.ShouldBind(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("email = ?", req.Username).First(&user).Error; err != nil {
			// Unknown email and wrong password return the same message
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
			return
		}
		// Compare provided password with stored hash
		if !utils.CheckPassword(req.Password, user.HashedPassword) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
			return
		}
		// Generate bearer token bound to the email
		token, err := utils.GenerateToken(user.Email, jwtSecret, tokenTTL)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
	}
}
