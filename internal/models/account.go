package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a user-defined money-holding entity ("bank"). Its live balance
// is always derived from the initial balance plus transactions, never stored.
type Account struct {
	ID             string          `gorm:"primaryKey" json:"id"`
	UserID         string          `gorm:"index" json:"user_id"`
	Name           string          `json:"name"`
	InitialBalance decimal.Decimal `gorm:"type:numeric" json:"initial_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
