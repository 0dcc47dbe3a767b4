package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erick-Breno/gestao/internal/models"
)

const dateLayout = "2006-01-02"

// GenerateInstallments expands a card purchase into total dated installment
// records. Each installment is amount/total rounded to cents; the last one
// absorbs the rounding remainder so the records sum to the full amount.
// Due dates advance month by month from the purchase date, with the day
// clamped to the last valid day of shorter months. All start unpaid.
func GenerateInstallments(tx models.Transaction, cardID string, total int) ([]models.Installment, error) {
	if total < 2 {
		return nil, fmt.Errorf("%w: installment count must be at least 2", ErrValidation)
	}
	purchase, err := time.Parse(dateLayout, tx.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid purchase date %q", ErrValidation, tx.Date)
	}

	per := tx.Amount.Div(decimal.NewFromInt(int64(total))).Round(2)
	installments := make([]models.Installment, 0, total)
	allocated := decimal.Zero

	for i := 1; i <= total; i++ {
		amount := per
		if i == total {
			amount = tx.Amount.Sub(allocated)
		}
		allocated = allocated.Add(amount)

		installments = append(installments, models.Installment{
			ID:            uuid.NewString(),
			UserID:        tx.UserID,
			TransactionID: tx.ID,
			CardID:        cardID,
			Number:        i,
			Total:         total,
			Amount:        amount,
			DueDate:       addMonthsClamped(purchase, i-1).Format(dateLayout),
			IsPaid:        false,
		})
	}
	return installments, nil
}

// addMonthsClamped advances t by months, keeping the day of month and
// clamping to the last day when the target month is shorter. time.AddDate
// would roll Jan 31 into March, which is wrong for a due date.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := lastDayOfMonth(first); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

func lastDayOfMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
