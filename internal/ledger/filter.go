package ledger

import "github.com/erick-Breno/gestao/internal/models"

// Filter narrows transactions to all records, cash-only records, or the
// records of a single account. Any value other than FilterAll and FilterCash
// is treated as an account id.
type Filter string

const (
	FilterAll  Filter = "all"
	FilterCash Filter = "cash"
)

// Matches reports whether the transaction falls inside the filter. Cash means
// tied to neither an account nor a card.
func (f Filter) Matches(t models.Transaction) bool {
	switch f {
	case FilterAll, "":
		return true
	case FilterCash:
		return t.Cash()
	default:
		return t.AccountID != nil && *t.AccountID == string(f)
	}
}
