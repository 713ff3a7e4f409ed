package api

import (
	"bytes"        // CSV buffer
	"context"      // Context for Redis operations
	"encoding/csv" // CSV export
	"net/http"     // HTTP status codes
	"strconv"      // String conversion
	"time"         // Time windows

	"expense_tracker/internal/domain" // Importing domain models
	"expense_tracker/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// listFilters are the accepted filter_type values for expense listing
var listFilters = []string{"all", "day", "week", "month"}

// CreateExpenseRequest is the expense creation payload. Amount is a pointer
// so that required means present: a zero amount is still a valid expense.
type CreateExpenseRequest struct {
	Amount      *float64   `json:"amount" binding:"required"`   // Amount must be present, value is not constrained
	Category    string     `json:"category" binding:"required"` // Category must be provided
	Description string     `json:"description"`                 // Optional description
	Date        *time.Time `json:"date"`                        // Optional timestamp, defaults to now
}

// windowStart returns the lower time bound for a list filter. The bool is
// false for "all", which applies no bound. The "month" window is a rolling
// 30 days, not a calendar month.
func windowStart(filterType string, now time.Time) (time.Time, bool) {
	switch filterType {
	case "day":
		return now.Add(-24 * time.Hour), true
	case "week":
		return now.Add(-7 * 24 * time.Hour), true
	case "month":
		return now.Add(-30 * 24 * time.Hour), true
	default:
		return time.Time{}, false
	}
}

// invalidateExpenseCaches drops every cached view an expense write can make
// stale: one list entry per filter plus the budget status
func invalidateExpenseCaches(ctx context.Context, rdb *redis.Client, userID uint) {
	keys := []string{"budget:user:" + strconv.Itoa(int(userID))} // Budget status depends on spending
	for _, f := range listFilters {
		keys = append(keys, "expenses:user:"+strconv.Itoa(int(userID))+":filter:"+f) // Cached list per filter
	}
	_ = utils.DeleteCache(ctx, rdb, keys...) // Best-effort invalidation
}

// CreateExpenseHandler records a new expense for the authenticated user
func CreateExpenseHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req CreateExpenseRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		date := time.Now().UTC() // Default the timestamp to creation time
		if req.Date != nil {
			date = *req.Date // Caller-supplied timestamp wins
		}
		expense := domain.Expense{
			Amount:      *req.Amount,     // Expense amount
			Category:    req.Category,    // Free-text category
			Description: req.Description, // Optional description
			Date:        date,            // Expense timestamp
			UserID:      userID.(uint),   // Owning user
		}
		// Save the expense
		if err := db.Create(&expense).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id": userID,         // User ID
				"amount":  expense.Amount, // Expense amount
				"error":   err.Error(),    // Error message
			}).Error("Failed to create expense")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create expense"})
			return
		}
		// Log successful creation
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,           // User ID
			"expense_id": expense.ID,       // Expense ID
			"amount":     expense.Amount,   // Expense amount
			"category":   expense.Category, // Category
			"type":       "create_expense", // Operation type
		}).Info("Expense created")
		// Invalidate the cached lists and budget status for this user
		invalidateExpenseCaches(c.Request.Context(), rdb, userID.(uint))
		c.JSON(http.StatusCreated, expense) // Return the created expense
	}
}

// ListExpensesHandler returns the authenticated user's expenses, optionally
// restricted to a relative time window, newest first
func ListExpensesHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		filterType := c.DefaultQuery("filter_type", "all") // Window filter, default all
		valid := false
		for _, f := range listFilters {
			if filterType == f {
				valid = true // Known filter
			}
		}
		// Reject unknown filter values
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter_type"})
			return
		}
		ctx := c.Request.Context() // Context for Redis operations
		// Cache key per user and filter
		cacheKey := "expenses:user:" + strconv.Itoa(int(userID.(uint))) + ":filter:" + filterType
		var cached []domain.Expense // Cached expense list
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		// If found in cache, return it
		if err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		query := db.Where("user_id = ?", userID) // Scope to the caller's expenses
		// Apply the relative window bound, if any
		if start, ok := windowStart(filterType, time.Now().UTC()); ok {
			query = query.Where("date >= ?", start)
		}
		var expenses []domain.Expense // Slice to hold expenses
		// Fetch expenses newest first
		if err := query.Order("date desc").Find(&expenses).Error; err != nil {
			// If fetching fails, return error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expenses"})
			return
		}
		// Cache the result for 60 seconds
		_ = utils.SetCache(ctx, rdb, cacheKey, expenses, 60*time.Second)
		c.JSON(http.StatusOK, expenses) // Return the list
	}
}

// DeleteExpenseHandler deletes one of the authenticated user's own expenses
func DeleteExpenseHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		expenseID, err := strconv.Atoi(c.Param("id")) // Parse the expense ID
		if err != nil {
			// Non-numeric IDs cannot match any expense
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
			return
		}
		var expense domain.Expense // Expense to delete
		// The ownership check is part of the lookup: a foreign expense is not found
		if err := db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
			return
		}
		// Delete the expense
		if err := db.Delete(&expense).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id":    userID,      // User ID
				"expense_id": expense.ID,  // Expense ID
				"error":      err.Error(), // Error message
			}).Error("Failed to delete expense")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense"})
			return
		}
		// Log successful deletion
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,           // User ID
			"expense_id": expense.ID,       // Expense ID
			"amount":     expense.Amount,   // Expense amount
			"type":       "delete_expense", // Operation type
		}).Info("Expense deleted")
		// Invalidate the cached lists and budget status for this user
		invalidateExpenseCaches(c.Request.Context(), rdb, userID.(uint))
		c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"}) // Return success response
	}
}

// ExportExpensesHandler streams the user's expenses as a CSV attachment
func ExportExpensesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var expenses []domain.Expense // Slice to hold expenses
		// Fetch the user's expenses in storage order
		if err := db.Where("user_id = ?", userID).Find(&expenses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expenses"})
			return
		}
		var buf bytes.Buffer          // CSV output buffer
		writer := csv.NewWriter(&buf) // CSV writer
		// Header row
		_ = writer.Write([]string{"ID", "Amount", "Category", "Description", "Date"})
		// One row per expense, raw field values
		for _, e := range expenses {
			_ = writer.Write([]string{
				strconv.Itoa(int(e.ID)),                    // Expense ID
				strconv.FormatFloat(e.Amount, 'f', -1, 64), // Amount
				e.Category,                                 // Category
				e.Description,                              // Description
				e.Date.Format(time.RFC3339),                // Date in its wire form
			})
		}
		writer.Flush() // Flush buffered rows
		if err := writer.Error(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export expenses"})
			return
		}
		// Serve as a downloadable attachment
		c.Header("Content-Disposition", "attachment; filename=expenses.csv")
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
	}
}
