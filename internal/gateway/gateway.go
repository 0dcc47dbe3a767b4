// Package gateway defines the persistence boundary of the tracker. The
// ledger store mutates its in-memory mirror only after a gateway call
// confirms, so both adapters must treat every method as all-or-nothing.
package gateway

import (
	"context"

	"github.com/erick-Breno/gestao/internal/models"
)

// Gateway loads and saves entities for one user at a time. List methods
// return accounts and cards in creation order ascending, transactions in
// creation order descending, and installments by due date ascending.
type Gateway interface {
	ListAccounts(ctx context.Context, userID string) ([]models.Account, error)
	ListCards(ctx context.Context, userID string) ([]models.Card, error)
	ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
	ListInstallments(ctx context.Context, userID string) ([]models.Installment, error)

	InsertAccount(ctx context.Context, account *models.Account) error
	UpdateAccount(ctx context.Context, account *models.Account) error
	// DeleteAccount removes the account and every transaction referencing it.
	DeleteAccount(ctx context.Context, userID, accountID string) error

	InsertCard(ctx context.Context, card *models.Card) error
	UpdateCard(ctx context.Context, card *models.Card) error
	// DeleteCard removes the card plus its transactions and installments.
	DeleteCard(ctx context.Context, userID, cardID string) error

	InsertTransaction(ctx context.Context, tx *models.Transaction) error
	DeleteTransaction(ctx context.Context, userID, transactionID string) error

	InsertInstallments(ctx context.Context, installments []models.Installment) error
}
