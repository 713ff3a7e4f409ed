package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Cache TTL and month boundaries

	"expense_tracker/internal/budget" // Budget status math
	"expense_tracker/internal/domain" // Importing domain models
	"expense_tracker/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// SetBudgetRequest is the budget upsert payload. The limit is a pointer so
// that required means present: setting it back to 0 disables alerting.
type SetBudgetRequest struct {
	MonthlyLimit *float64 `json:"monthly_limit" binding:"required"` // Monthly limit must be present
}

// loadBudgetStatus computes the user's current budget status from the store:
// the limit (0 when no row exists) against this calendar month's spending
func loadBudgetStatus(db *gorm.DB, userID uint) (budget.Status, error) {
	var row domain.Budget // Budget row, at most one per user
	limit := 0.0
	err := db.Where("user_id = ?", userID).First(&row).Error
	switch err {
	case nil:
		limit = row.MonthlyLimit
	case gorm.ErrRecordNotFound:
		// No row means no limit has been set; that is not an error
	default:
		return budget.Status{}, err // A store failure must not read as "no budget"
	}
	startOfMonth := budget.StartOfMonth(time.Now().UTC()) // Calendar-month lower bound
	var spending float64
	// Sum this month's spending; COALESCE covers the no-expenses case
	if err := db.Model(&domain.Expense{}).
		Where("user_id = ? AND date >= ?", userID, startOfMonth).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&spending).Error; err != nil {
		return budget.Status{}, err
	}
	return budget.Compute(limit, spending), nil
}

// SetBudgetHandler upserts the user's monthly limit and returns fresh status
func SetBudgetHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req SetBudgetRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var row domain.Budget // Existing budget row, if any
		err := db.Where("user_id = ?", userID).First(&row).Error
		if err == nil {
			// Row exists: overwrite the limit in place
			row.MonthlyLimit = *req.MonthlyLimit
			err = db.Save(&row).Error
		} else if err == gorm.ErrRecordNotFound {
			// No row yet: create one for this user
			row = domain.Budget{MonthlyLimit: *req.MonthlyLimit, UserID: userID.(uint)}
			err = db.Create(&row).Error
		}
		// Handle upsert result
		if err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id": userID,            // User ID
				"limit":   *req.MonthlyLimit, // Requested limit
				"error":   err.Error(),       // Error message
			}).Error("Failed to set budget")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set budget"})
			return
		}
		// Log successful budget update
		logrus.WithFields(logrus.Fields{
			"user_id": userID,            // User ID
			"limit":   *req.MonthlyLimit, // New monthly limit
			"type":    "set_budget",      // Operation type
		}).Info("Budget set")
		// Invalidate the cached budget status
		_ = utils.DeleteCache(c.Request.Context(), rdb, "budget:user:"+strconv.Itoa(int(userID.(uint))))
		// Recompute and return the current status
		status, err := loadBudgetStatus(db, userID.(uint))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute budget status"})
			return
		}
		c.JSON(http.StatusOK, status)
	}
}

// GetBudgetHandler returns the user's current budget status
func GetBudgetHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := c.Request.Context()                                    // Context for Redis operations
		cacheKey := "budget:user:" + strconv.Itoa(int(userID.(uint))) // Cache key for budget status
		var cached budget.Status                                      // Cached status
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		// If found in cache, return it
		if err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		// Compute from the store
		status, err := loadBudgetStatus(db, userID.(uint))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute budget status"})
			return
		}
		// Cache the status for 60 seconds
		_ = utils.SetCache(ctx, rdb, cacheKey, status, 60*time.Second)
		c.JSON(http.StatusOK, status)
	}
}
