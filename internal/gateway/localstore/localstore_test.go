package localstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

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

func newTestGateway(t *testing.T) *Gateway {
	t.Helper()
	gw, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return gw
}

func TestRoundTrip(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	account := models.Account{
		ID: "acc-1", UserID: "user-1", Name: "Checking",
		InitialBalance: dec(t, "1000.00"), CreatedAt: time.Now(),
	}
	if err := gw.InsertAccount(ctx, &account); err != nil {
		t.Fatalf("InsertAccount: %v", err)
	}

	card := models.Card{
		ID: "card-1", UserID: "user-1", Name: "Visa",
		CreditLimit: dec(t, "1000.00"), CurrentBalance: decimal.Zero,
		ClosingDay: 1, DueDay: 15, CreatedAt: time.Now(),
	}
	if err := gw.InsertCard(ctx, &card); err != nil {
		t.Fatalf("InsertCard: %v", err)
	}

	accounts, err := gw.ListAccounts(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListAccounts: %v", err)
	}
	if len(accounts) != 1 || accounts[0].Name != "Checking" {
		t.Errorf("ListAccounts = %+v, want Checking", accounts)
	}
	if !accounts[0].InitialBalance.Equal(dec(t, "1000.00")) {
		t.Errorf("initial balance lost in round trip: %s", accounts[0].InitialBalance)
	}

	cards, err := gw.ListCards(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListCards: %v", err)
	}
	if len(cards) != 1 || cards[0].DueDay != 15 {
		t.Errorf("ListCards = %+v", cards)
	}
}

func TestSnapshotsAreNamespacedPerUser(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	a1 := models.Account{ID: "acc-1", UserID: "user-1", Name: "Mine", InitialBalance: decimal.Zero, CreatedAt: time.Now()}
	a2 := models.Account{ID: "acc-2", UserID: "user-2", Name: "Theirs", InitialBalance: decimal.Zero, CreatedAt: time.Now()}
	if err := gw.InsertAccount(ctx, &a1); err != nil {
		t.Fatal(err)
	}
	if err := gw.InsertAccount(ctx, &a2); err != nil {
		t.Fatal(err)
	}

	mine, err := gw.ListAccounts(ctx, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 1 || mine[0].Name != "Mine" {
		t.Errorf("user-1 sees %+v", mine)
	}
}

func TestListTransactionsNewestFirst(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	base := time.Now()
	for i, desc := range []string{"first", "second", "third"} {
		tx := models.Transaction{
			ID: desc, UserID: "user-1", Description: desc,
			Amount: dec(t, "1.00"), Kind: models.KindIncome, Category: "Misc",
			Date: "2024-01-01", Installments: 1, CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		if err := gw.InsertTransaction(ctx, &tx); err != nil {
			t.Fatalf("InsertTransaction: %v", err)
		}
	}

	got, err := gw.ListTransactions(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if got[0].Description != "third" || got[2].Description != "first" {
		t.Errorf("order = %s, %s, %s; want newest first", got[0].Description, got[1].Description, got[2].Description)
	}
}

func TestListInstallmentsByDueDate(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	installments := []models.Installment{
		{ID: "i2", UserID: "user-1", TransactionID: "tx", CardID: "card", Number: 2, Total: 2, Amount: dec(t, "50.00"), DueDate: "2024-02-15"},
		{ID: "i1", UserID: "user-1", TransactionID: "tx", CardID: "card", Number: 1, Total: 2, Amount: dec(t, "50.00"), DueDate: "2024-01-15"},
	}
	if err := gw.InsertInstallments(ctx, installments); err != nil {
		t.Fatalf("InsertInstallments: %v", err)
	}

	got, err := gw.ListInstallments(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListInstallments: %v", err)
	}
	if got[0].DueDate != "2024-01-15" || got[1].DueDate != "2024-02-15" {
		t.Errorf("order = %s, %s; want due date ascending", got[0].DueDate, got[1].DueDate)
	}
}

func TestCascadeDeletes(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	card := models.Card{ID: "card-1", UserID: "user-1", Name: "Visa", CreditLimit: dec(t, "1000"), CurrentBalance: decimal.Zero, ClosingDay: 1, DueDay: 10, CreatedAt: time.Now()}
	if err := gw.InsertCard(ctx, &card); err != nil {
		t.Fatal(err)
	}
	cardID := card.ID
	tx := models.Transaction{ID: "tx-1", UserID: "user-1", Description: "tv", Amount: dec(t, "300.00"), Kind: models.KindExpense, Category: "Home", CardID: &cardID, Date: "2024-01-15", Installments: 3, CreatedAt: time.Now()}
	if err := gw.InsertTransaction(ctx, &tx); err != nil {
		t.Fatal(err)
	}
	if err := gw.InsertInstallments(ctx, []models.Installment{
		{ID: "i1", UserID: "user-1", TransactionID: "tx-1", CardID: "card-1", Number: 1, Total: 3, Amount: dec(t, "100.00"), DueDate: "2024-01-15"},
	}); err != nil {
		t.Fatal(err)
	}

	if err := gw.DeleteCard(ctx, "user-1", "card-1"); err != nil {
		t.Fatalf("DeleteCard: %v", err)
	}

	cards, _ := gw.ListCards(ctx, "user-1")
	transactions, _ := gw.ListTransactions(ctx, "user-1")
	installments, _ := gw.ListInstallments(ctx, "user-1")
	if len(cards) != 0 || len(transactions) != 0 || len(installments) != 0 {
		t.Errorf("cascade left %d cards, %d transactions, %d installments", len(cards), len(transactions), len(installments))
	}
}

func TestMissingSnapshotIsEmptyLedger(t *testing.T) {
	gw := newTestGateway(t)
	accounts, err := gw.ListAccounts(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("ListAccounts: %v", err)
	}
	if len(accounts) != 0 {
		t.Errorf("missing snapshot should read as empty, got %d accounts", len(accounts))
	}
}

func TestCorruptSnapshotRejected(t *testing.T) {
	dir := t.TempDir()
	gw, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Well-formed JSON that violates the schema.
	corrupt := `{"accounts": "nope", "cards": [], "transactions": [], "installments": []}`
	if err := os.WriteFile(filepath.Join(dir, "user-1.json"), []byte(corrupt), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := gw.ListAccounts(context.Background(), "user-1"); err == nil {
		t.Error("schema-violating snapshot must be rejected")
	}
}
