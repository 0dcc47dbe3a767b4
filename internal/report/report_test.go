package report

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/erick-Breno/gestao/internal/ledger"
	"github.com/erick-Breno/gestao/internal/models"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func ptr(s string) *string { return &s }

func TestCategoriesExpensesOnlySortedDescending(t *testing.T) {
	transactions := []models.Transaction{
		{ID: "t1", Kind: models.KindExpense, Category: "Food", Amount: dec(t, "120.00"), Date: "2024-01-02"},
		{ID: "t2", Kind: models.KindExpense, Category: "Transport", Amount: dec(t, "300.00"), Date: "2024-01-03"},
		{ID: "t3", Kind: models.KindExpense, Category: "Food", Amount: dec(t, "80.00"), Date: "2024-01-10"},
		{ID: "t4", Kind: models.KindIncome, Category: "Salary", Amount: dec(t, "5000.00"), Date: "2024-01-05"},
	}

	got := Categories(transactions, ledger.FilterAll)
	if got.Empty {
		t.Fatal("breakdown should not be empty")
	}
	if len(got.Totals) != 2 {
		t.Fatalf("got %d categories, want 2", len(got.Totals))
	}
	if got.Totals[0].Category != "Transport" || !got.Totals[0].Total.Equal(dec(t, "300.00")) {
		t.Errorf("first = %s %s, want Transport 300.00", got.Totals[0].Category, got.Totals[0].Total)
	}
	if got.Totals[1].Category != "Food" || !got.Totals[1].Total.Equal(dec(t, "200.00")) {
		t.Errorf("second = %s %s, want Food 200.00", got.Totals[1].Category, got.Totals[1].Total)
	}
	for _, ct := range got.Totals {
		if ct.Category == "Salary" {
			t.Error("income must never contribute to the category aggregate")
		}
	}
}

func TestCategoriesEmptyMarker(t *testing.T) {
	onlyIncome := []models.Transaction{
		{ID: "t1", Kind: models.KindIncome, Category: "Salary", Amount: dec(t, "100.00"), Date: "2024-01-05"},
	}
	got := Categories(onlyIncome, ledger.FilterAll)
	if !got.Empty {
		t.Error("zero expense transactions must yield the explicit empty marker")
	}
	if len(got.Totals) != 0 {
		t.Errorf("empty breakdown carries %d totals", len(got.Totals))
	}
}

func TestCategoriesHonorsFilter(t *testing.T) {
	transactions := []models.Transaction{
		{ID: "t1", Kind: models.KindExpense, Category: "Food", Amount: dec(t, "10.00"), AccountID: ptr("acc-1"), Date: "2024-01-02"},
		{ID: "t2", Kind: models.KindExpense, Category: "Rent", Amount: dec(t, "900.00"), AccountID: ptr("acc-2"), Date: "2024-01-02"},
	}
	got := Categories(transactions, ledger.Filter("acc-1"))
	if len(got.Totals) != 1 || got.Totals[0].Category != "Food" {
		t.Errorf("filtered breakdown = %+v, want only Food", got.Totals)
	}
}

func TestAccountBalancesIncludesCashOnlyWhenNonZero(t *testing.T) {
	accounts := []models.Account{
		{ID: "acc-1", Name: "Checking", InitialBalance: dec(t, "1000.00")},
	}
	transactions := []models.Transaction{
		{ID: "t1", AccountID: ptr("acc-1"), Kind: models.KindIncome, Amount: dec(t, "500.00")},
		{ID: "t2", Kind: models.KindIncome, Amount: dec(t, "70.00")},
		{ID: "t3", Kind: models.KindExpense, Amount: dec(t, "20.00")},
	}

	got := AccountBalances(accounts, transactions)
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got[0].Name != "Checking" || !got[0].Balance.Equal(dec(t, "1500.00")) {
		t.Errorf("account entry = %s %s, want Checking 1500.00", got[0].Name, got[0].Balance)
	}
	if !got[1].Cash || !got[1].Balance.Equal(dec(t, "50.00")) {
		t.Errorf("cash entry = %+v, want Cash 50.00", got[1])
	}

	// Cash income and expense net to zero: no synthetic entry.
	balanced := []models.Transaction{
		{ID: "t1", Kind: models.KindIncome, Amount: dec(t, "30.00")},
		{ID: "t2", Kind: models.KindExpense, Amount: dec(t, "30.00")},
	}
	got = AccountBalances(accounts, balanced)
	if len(got) != 1 {
		t.Errorf("zero cash balance must not produce a Cash entry; got %d entries", len(got))
	}
}

func TestMonthlyTimelineParallelSeries(t *testing.T) {
	transactions := []models.Transaction{
		{ID: "t1", Kind: models.KindIncome, Amount: dec(t, "500.00"), Date: "2024-01-05"},
		{ID: "t2", Kind: models.KindExpense, Amount: dec(t, "200.00"), Date: "2024-01-10"},
		{ID: "t3", Kind: models.KindExpense, Amount: dec(t, "100.00"), Date: "2024-03-02"},
		{ID: "t4", Kind: models.KindIncome, Amount: dec(t, "50.00"), Date: "2023-12-31"},
	}

	got := MonthlyTimeline(transactions, ledger.FilterAll)
	if got.Empty {
		t.Fatal("timeline should not be empty")
	}

	wantMonths := []string{"2023-12", "2024-01", "2024-03"}
	if len(got.Months) != len(wantMonths) {
		t.Fatalf("got %d months, want %d", len(got.Months), len(wantMonths))
	}
	for i, m := range wantMonths {
		if got.Months[i] != m {
			t.Errorf("month %d = %s, want %s", i, got.Months[i], m)
		}
	}
	if len(got.Income) != len(got.Months) || len(got.Expense) != len(got.Months) || len(got.Net) != len(got.Months) {
		t.Fatal("series lengths must match the month axis")
	}

	// 2024-02 has no transactions and must not appear.
	for _, m := range got.Months {
		if m == "2024-02" {
			t.Error("month without transactions present in timeline")
		}
	}

	if !got.Income[1].Equal(dec(t, "500.00")) || !got.Expense[1].Equal(dec(t, "200.00")) || !got.Net[1].Equal(dec(t, "300.00")) {
		t.Errorf("2024-01 = income %s expense %s net %s, want 500/200/300",
			got.Income[1], got.Expense[1], got.Net[1])
	}
	if !got.Net[0].Equal(dec(t, "50.00")) {
		t.Errorf("2023-12 net = %s, want 50.00", got.Net[0])
	}
	if !got.Net[2].Equal(dec(t, "-100.00")) {
		t.Errorf("2024-03 net = %s, want -100.00", got.Net[2])
	}
}

func TestMonthlyTimelineEmpty(t *testing.T) {
	got := MonthlyTimeline(nil, ledger.FilterAll)
	if !got.Empty {
		t.Error("no transactions must yield the empty marker")
	}
}

func TestMonthlyTimelineHonorsFilter(t *testing.T) {
	transactions := []models.Transaction{
		{ID: "t1", Kind: models.KindIncome, Amount: dec(t, "100.00"), AccountID: ptr("acc-1"), Date: "2024-01-05"},
		{ID: "t2", Kind: models.KindIncome, Amount: dec(t, "999.00"), AccountID: ptr("acc-2"), Date: "2024-02-05"},
	}
	got := MonthlyTimeline(transactions, ledger.Filter("acc-1"))
	if len(got.Months) != 1 || got.Months[0] != "2024-01" {
		t.Errorf("filtered months = %v, want [2024-01]", got.Months)
	}
}
