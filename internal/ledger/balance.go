package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/erick-Breno/gestao/internal/models"
)

// Summary holds the aggregate totals for a filtered view of the ledger.
type Summary struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	FinalBalance decimal.Decimal `json:"final_balance"`
}

// AccountBalance derives an account's balance: initial balance plus income
// minus expense over the transactions that settle against it.
func AccountBalance(account models.Account, transactions []models.Transaction) decimal.Decimal {
	balance := account.InitialBalance
	for _, t := range transactions {
		if t.AccountID == nil || *t.AccountID != account.ID {
			continue
		}
		switch t.Kind {
		case models.KindIncome:
			balance = balance.Add(t.Amount)
		case models.KindExpense:
			balance = balance.Sub(t.Amount)
		}
	}
	return balance
}

// CashBalance nets the transactions tied to neither an account nor a card.
func CashBalance(transactions []models.Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, t := range transactions {
		if !t.Cash() {
			continue
		}
		switch t.Kind {
		case models.KindIncome:
			balance = balance.Add(t.Amount)
		case models.KindExpense:
			balance = balance.Sub(t.Amount)
		}
	}
	return balance
}

// Summarize totals income and expense over the filtered transactions and adds
// the applicable initial balance: every account's when the filter is all, the
// single account's when the filter names one, none for cash.
func Summarize(accounts []models.Account, transactions []models.Transaction, filter Filter) Summary {
	income := decimal.Zero
	expense := decimal.Zero
	for _, t := range transactions {
		if !filter.Matches(t) {
			continue
		}
		switch t.Kind {
		case models.KindIncome:
			income = income.Add(t.Amount)
		case models.KindExpense:
			expense = expense.Add(t.Amount)
		}
	}

	initial := decimal.Zero
	switch filter {
	case FilterAll, "":
		for _, a := range accounts {
			initial = initial.Add(a.InitialBalance)
		}
	case FilterCash:
		// cash has no initial balance
	default:
		for _, a := range accounts {
			if a.ID == string(filter) {
				initial = a.InitialBalance
				break
			}
		}
	}

	return Summary{
		TotalIncome:  income,
		TotalExpense: expense,
		FinalBalance: income.Sub(expense).Add(initial),
	}
}
