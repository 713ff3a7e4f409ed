package domain

import "time" // Expense timestamps

// Expense Model
type Expense struct {
	ID          uint      `gorm:"primaryKey" json:"id"`     // Primary key
	Amount      float64   `gorm:"not null" json:"amount"`   // Amount, sign is not constrained
	Category    string    `gorm:"not null" json:"category"` // Free-text category
	Description string    `json:"description"`              // Optional description
	Date        time.Time `gorm:"index" json:"date"`        // Expense timestamp, defaults to creation time
	UserID      uint      `gorm:"index;not null" json:"-"`  // Foreign key to the owning User
}
