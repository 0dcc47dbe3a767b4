package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Card is a credit instrument. CurrentBalance accumulates the full amount of
// every card expense at purchase time, regardless of installment count.
type Card struct {
	ID             string          `gorm:"primaryKey" json:"id"`
	UserID         string          `gorm:"index" json:"user_id"`
	Name           string          `json:"name"`
	CreditLimit    decimal.Decimal `gorm:"type:numeric" json:"credit_limit"`
	CurrentBalance decimal.Decimal `gorm:"type:numeric" json:"current_balance"`
	ClosingDay     int             `json:"closing_day"`
	DueDay         int             `json:"due_day"` // 1-31
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
