// Package report projects ledger contents into the three aggregate shapes
// the charting collaborator consumes. Everything here is a pure function of
// (transactions, accounts, filter) and is recomputed on every request.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erick-Breno/gestao/internal/ledger"
	"github.com/erick-Breno/gestao/internal/models"
)

// CategoryTotal is one slice of the expenses-by-category aggregate.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// CategoryBreakdown lists expense totals per category, largest first.
// Empty is the explicit no-data marker: when true, Totals carries no entries
// and the renderer shows its empty state instead of a blank chart.
type CategoryBreakdown struct {
	Totals []CategoryTotal `json:"totals"`
	Empty  bool            `json:"empty"`
}

// AccountBalanceEntry is one slice of the balance-per-account aggregate.
// Cash marks the synthetic entry for transactions tied to nothing.
type AccountBalanceEntry struct {
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
	Cash    bool            `json:"cash,omitempty"`
}

// Timeline groups transactions by calendar month into three parallel series.
// Months holds the ascending YYYY-MM keys; Income, Expense and Net have one
// entry per month.
type Timeline struct {
	Months  []string          `json:"months"`
	Income  []decimal.Decimal `json:"income"`
	Expense []decimal.Decimal `json:"expense"`
	Net     []decimal.Decimal `json:"net"`
	Empty   bool              `json:"empty"`
}

// Categories totals expense transactions per category inside the filter.
// Income never contributes.
func Categories(transactions []models.Transaction, filter ledger.Filter) CategoryBreakdown {
	totals := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		if t.Kind != models.KindExpense || !filter.Matches(t) {
			continue
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
	}
	if len(totals) == 0 {
		return CategoryBreakdown{Empty: true}
	}

	breakdown := CategoryBreakdown{Totals: make([]CategoryTotal, 0, len(totals))}
	for category, total := range totals {
		breakdown.Totals = append(breakdown.Totals, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(breakdown.Totals, func(i, j int) bool {
		if breakdown.Totals[i].Total.Equal(breakdown.Totals[j].Total) {
			return breakdown.Totals[i].Category < breakdown.Totals[j].Category
		}
		return breakdown.Totals[i].Total.GreaterThan(breakdown.Totals[j].Total)
	})
	return breakdown
}

// AccountBalances derives one entry per account plus a synthetic Cash entry
// for transactions tied to neither an account nor a card. The Cash entry is
// included only when its net balance is non-zero.
func AccountBalances(accounts []models.Account, transactions []models.Transaction) []AccountBalanceEntry {
	entries := make([]AccountBalanceEntry, 0, len(accounts)+1)
	for _, a := range accounts {
		entries = append(entries, AccountBalanceEntry{
			Name:    a.Name,
			Balance: ledger.AccountBalance(a, transactions),
		})
	}
	if cash := ledger.CashBalance(transactions); !cash.IsZero() {
		entries = append(entries, AccountBalanceEntry{Name: "Cash", Balance: cash, Cash: true})
	}
	return entries
}

// MonthlyTimeline groups the filtered transactions by year-month and emits
// income, expense and net series over the months that have data.
func MonthlyTimeline(transactions []models.Transaction, filter ledger.Filter) Timeline {
	type bucket struct {
		income  decimal.Decimal
		expense decimal.Decimal
	}
	buckets := make(map[string]*bucket)
	for _, t := range transactions {
		if !filter.Matches(t) {
			continue
		}
		date, err := time.Parse("2006-01-02", t.Date)
		if err != nil {
			continue
		}
		key := date.Format("2006-01")
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		switch t.Kind {
		case models.KindIncome:
			b.income = b.income.Add(t.Amount)
		case models.KindExpense:
			b.expense = b.expense.Add(t.Amount)
		}
	}
	if len(buckets) == 0 {
		return Timeline{Empty: true}
	}

	months := make([]string, 0, len(buckets))
	for key := range buckets {
		months = append(months, key)
	}
	sort.Strings(months)

	timeline := Timeline{
		Months:  months,
		Income:  make([]decimal.Decimal, len(months)),
		Expense: make([]decimal.Decimal, len(months)),
		Net:     make([]decimal.Decimal, len(months)),
	}
	for i, key := range months {
		b := buckets[key]
		timeline.Income[i] = b.income
		timeline.Expense[i] = b.expense
		timeline.Net[i] = b.income.Sub(b.expense)
	}
	return timeline
}
