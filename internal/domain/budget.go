package domain

// Budget Model
type Budget struct {
	ID           uint    `gorm:"primaryKey" json:"id"`                    // Primary key
	MonthlyLimit float64 `gorm:"not null;default:0" json:"monthly_limit"` // Monthly spending limit
	UserID       uint    `gorm:"uniqueIndex" json:"-"`                    // Foreign key to User, one Budget per user
}
