package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Installment is one scheduled portion of a multi-part card transaction.
// DueDate is stored as YYYY-MM-DD.
type Installment struct {
	ID            string          `gorm:"primaryKey" json:"id"`
	UserID        string          `gorm:"index" json:"user_id"`
	TransactionID string          `gorm:"index" json:"transaction_id"`
	CardID        string          `gorm:"index" json:"card_id"`
	Number        int             `json:"installment_number"`
	Total         int             `json:"total_installments"`
	Amount        decimal.Decimal `gorm:"type:numeric" json:"amount"`
	DueDate       string          `json:"due_date"`
	IsPaid        bool            `json:"is_paid"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
