package domain

// User Model
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`                  // Primary key
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`     // Unique email, stored case-sensitively
	HashedPassword string    `gorm:"not null" json:"-"`                     // Bcrypt hash, never the raw password
	Expenses       []Expense `gorm:"constraint:OnDelete:CASCADE;" json:"-"` // One-to-many relationship with Expense
	Budget         *Budget   `gorm:"constraint:OnDelete:CASCADE;" json:"-"` // At most one Budget per user
}
