package api

import (
	"expense_tracker/internal/config"     // Application configuration
	"expense_tracker/internal/middleware" // Auth middleware

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// NewRouter builds the gin engine with all routes wired. A nil redis client
// disables caching; everything else behaves the same.
func NewRouter(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *gin.Engine {
	r := gin.Default() // Gin router instance

	// Auth routes
	r.POST("/auth/register", RegisterHandler(db))                        // Registration endpoint
	r.POST("/auth/login", LoginHandler(db, cfg.JWTSecret, cfg.TokenTTL)) // Login endpoint

	// Expense routes (protected by bearer token)
	expenseGroup := r.Group("/expenses")
	expenseGroup.Use(middleware.JWTAuthMiddleware(db, cfg.JWTSecret))
	expenseGroup.POST("/", CreateExpenseHandler(db, rdb))      // Create expense endpoint
	expenseGroup.GET("/", ListExpensesHandler(db, rdb))        // List expenses endpoint
	expenseGroup.GET("/export", ExportExpensesHandler(db))     // CSV export endpoint
	expenseGroup.DELETE("/:id", DeleteExpenseHandler(db, rdb)) // Delete expense endpoint

	// Budget routes (protected by bearer token)
	budgetGroup := r.Group("/budget")
	budgetGroup.Use(middleware.JWTAuthMiddleware(db, cfg.JWTSecret))
	budgetGroup.POST("/", SetBudgetHandler(db, rdb)) // Set budget endpoint
	budgetGroup.GET("/", GetBudgetHandler(db, rdb))  // Budget status endpoint

	return r
}
