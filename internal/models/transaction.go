package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	KindIncome  = "income"
	KindExpense = "expense"
)

// Transaction is a single income or expense event. AccountID and CardID are
// mutually exclusive; when both are nil the transaction settles in cash.
// Date is stored as YYYY-MM-DD.
type Transaction struct {
	ID           string          `gorm:"primaryKey" json:"id"`
	UserID       string          `gorm:"index" json:"user_id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `gorm:"type:numeric" json:"amount"`
	Kind         string          `json:"kind"`
	Category     string          `json:"category"`
	AccountID    *string         `gorm:"index" json:"account_id,omitempty"`
	CardID       *string         `gorm:"index" json:"card_id,omitempty"`
	Date         string          `json:"date"`
	Installments int             `json:"installments"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Cash reports whether the transaction settles against neither an account
// nor a card.
func (t Transaction) Cash() bool {
	return t.AccountID == nil && t.CardID == nil
}
