// Package ledger holds the authoritative in-memory collections for one
// user's session and the pure balance derivations over them. Every mutation
// goes through the persistence gateway first; the local mirror changes only
// after the gateway confirms.
package ledger

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erick-Breno/gestao/internal/gateway"
	"github.com/erick-Breno/gestao/internal/models"
)

// Store is the single source of truth for a session. The contract assumes
// one active mutator per user; the mutex enforces that even when the HTTP
// transport delivers overlapping requests.
type Store struct {
	mu     sync.Mutex
	gw     gateway.Gateway
	userID string

	accounts     []models.Account
	cards        []models.Card
	transactions []models.Transaction
	installments []models.Installment
}

func NewStore(gw gateway.Gateway, userID string) *Store {
	return &Store{gw: gw, userID: userID}
}

// Load replaces the mirror with the gateway's current contents.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.gw.ListAccounts(ctx, s.userID)
	if err != nil {
		return remoteErr("load accounts", err)
	}
	cards, err := s.gw.ListCards(ctx, s.userID)
	if err != nil {
		return remoteErr("load cards", err)
	}
	transactions, err := s.gw.ListTransactions(ctx, s.userID)
	if err != nil {
		return remoteErr("load transactions", err)
	}
	installments, err := s.gw.ListInstallments(ctx, s.userID)
	if err != nil {
		return remoteErr("load installments", err)
	}

	s.accounts = accounts
	s.cards = cards
	s.transactions = transactions
	s.installments = installments
	return nil
}

// Accounts returns a copy of the account mirror, creation order ascending.
func (s *Store) Accounts() []models.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Account(nil), s.accounts...)
}

// Cards returns a copy of the card mirror, creation order ascending.
func (s *Store) Cards() []models.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Card(nil), s.cards...)
}

// Transactions returns a copy of the transaction mirror, newest first.
func (s *Store) Transactions() []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Transaction(nil), s.transactions...)
}

// Installments returns a copy of the installment mirror, due date ascending.
func (s *Store) Installments() []models.Installment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Installment(nil), s.installments...)
}

func (s *Store) AddAccount(ctx context.Context, name string, initialBalance decimal.Decimal) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Account{}, fmt.Errorf("%w: account name is required", ErrValidation)
	}

	account := models.Account{
		ID:             uuid.NewString(),
		UserID:         s.userID,
		Name:           name,
		InitialBalance: initialBalance,
		CreatedAt:      time.Now(),
	}
	if err := s.gw.InsertAccount(ctx, &account); err != nil {
		return models.Account{}, remoteErr("insert account", err)
	}

	s.accounts = append(s.accounts, account)
	return account, nil
}

func (s *Store) UpdateAccount(ctx context.Context, id, name string, initialBalance decimal.Decimal) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Account{}, fmt.Errorf("%w: account name is required", ErrValidation)
	}
	idx := s.accountIndex(id)
	if idx < 0 {
		return models.Account{}, fmt.Errorf("%w: account %s", ErrNotFound, id)
	}

	updated := s.accounts[idx]
	updated.Name = name
	updated.InitialBalance = initialBalance
	if err := s.gw.UpdateAccount(ctx, &updated); err != nil {
		return models.Account{}, remoteErr("update account", err)
	}

	s.accounts[idx] = updated
	return updated, nil
}

// RemoveAccount deletes the account and cascades to its transactions.
func (s *Store) RemoveAccount(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accountIndex(id) < 0 {
		return fmt.Errorf("%w: account %s", ErrNotFound, id)
	}
	if err := s.gw.DeleteAccount(ctx, s.userID, id); err != nil {
		return remoteErr("delete account", err)
	}

	s.accounts = deleteBy(s.accounts, func(a models.Account) bool { return a.ID == id })
	s.transactions = deleteBy(s.transactions, func(t models.Transaction) bool {
		return t.AccountID != nil && *t.AccountID == id
	})
	return nil
}

func (s *Store) AddCard(ctx context.Context, name string, creditLimit decimal.Decimal, dueDay int) (models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Card{}, fmt.Errorf("%w: card name is required", ErrValidation)
	}
	if dueDay < 1 || dueDay > 31 {
		return models.Card{}, fmt.Errorf("%w: due day must be between 1 and 31", ErrValidation)
	}

	card := models.Card{
		ID:             uuid.NewString(),
		UserID:         s.userID,
		Name:           name,
		CreditLimit:    creditLimit,
		CurrentBalance: decimal.Zero,
		ClosingDay:     1,
		DueDay:         dueDay,
		CreatedAt:      time.Now(),
	}
	if err := s.gw.InsertCard(ctx, &card); err != nil {
		return models.Card{}, remoteErr("insert card", err)
	}

	s.cards = append(s.cards, card)
	return card, nil
}

func (s *Store) UpdateCard(ctx context.Context, id, name string, creditLimit decimal.Decimal, dueDay int) (models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Card{}, fmt.Errorf("%w: card name is required", ErrValidation)
	}
	if dueDay < 1 || dueDay > 31 {
		return models.Card{}, fmt.Errorf("%w: due day must be between 1 and 31", ErrValidation)
	}
	idx := s.cardIndex(id)
	if idx < 0 {
		return models.Card{}, fmt.Errorf("%w: card %s", ErrNotFound, id)
	}

	updated := s.cards[idx]
	updated.Name = name
	updated.CreditLimit = creditLimit
	updated.DueDay = dueDay
	if err := s.gw.UpdateCard(ctx, &updated); err != nil {
		return models.Card{}, remoteErr("update card", err)
	}

	s.cards[idx] = updated
	return updated, nil
}

// RemoveCard deletes the card and cascades to its transactions and
// installments.
func (s *Store) RemoveCard(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cardIndex(id) < 0 {
		return fmt.Errorf("%w: card %s", ErrNotFound, id)
	}
	if err := s.gw.DeleteCard(ctx, s.userID, id); err != nil {
		return remoteErr("delete card", err)
	}

	s.cards = deleteBy(s.cards, func(c models.Card) bool { return c.ID == id })
	s.transactions = deleteBy(s.transactions, func(t models.Transaction) bool {
		return t.CardID != nil && *t.CardID == id
	})
	s.installments = deleteBy(s.installments, func(i models.Installment) bool {
		return i.CardID == id
	})
	return nil
}

// TransactionInput carries the fields of the transaction entry form.
type TransactionInput struct {
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Kind         string          `json:"kind"`
	Category     string          `json:"category"`
	AccountID    *string         `json:"account_id"`
	CardID       *string         `json:"card_id"`
	Date         string          `json:"date"`
	Installments int             `json:"installments"`
}

// AddTransaction validates and records a transaction. A card expense
// reserves its full amount against the card immediately, regardless of the
// installment count; a count above one additionally expands into dated
// installment records. If a follow-up step fails after the transaction row
// was inserted, the insert is compensated with a best-effort delete and the
// mirror stays untouched.
func (s *Store) AddTransaction(ctx context.Context, in TransactionInput) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validateTransaction(&in); err != nil {
		return models.Transaction{}, err
	}

	tx := models.Transaction{
		ID:           uuid.NewString(),
		UserID:       s.userID,
		Description:  strings.TrimSpace(in.Description),
		Amount:       in.Amount,
		Kind:         in.Kind,
		Category:     in.Category,
		AccountID:    in.AccountID,
		CardID:       in.CardID,
		Date:         in.Date,
		Installments: in.Installments,
		CreatedAt:    time.Now(),
	}
	if err := s.gw.InsertTransaction(ctx, &tx); err != nil {
		return models.Transaction{}, remoteErr("insert transaction", err)
	}

	var generated []models.Installment
	if in.CardID != nil && in.Installments > 1 {
		var err error
		generated, err = GenerateInstallments(tx, *in.CardID, in.Installments)
		if err == nil {
			err = s.gw.InsertInstallments(ctx, generated)
		}
		if err != nil {
			s.compensate(ctx, tx.ID)
			return models.Transaction{}, remoteErr("insert installments", err)
		}
	}

	var updatedCard *models.Card
	if in.CardID != nil {
		idx := s.cardIndex(*in.CardID)
		card := s.cards[idx]
		card.CurrentBalance = card.CurrentBalance.Add(in.Amount)
		if err := s.gw.UpdateCard(ctx, &card); err != nil {
			s.compensate(ctx, tx.ID)
			return models.Transaction{}, remoteErr("update card balance", err)
		}
		updatedCard = &card
	}

	// Everything confirmed; mirror the changes.
	s.transactions = append([]models.Transaction{tx}, s.transactions...)
	if len(generated) > 0 {
		s.installments = append(s.installments, generated...)
		sort.SliceStable(s.installments, func(i, j int) bool {
			return s.installments[i].DueDate < s.installments[j].DueDate
		})
	}
	if updatedCard != nil {
		s.cards[s.cardIndex(updatedCard.ID)] = *updatedCard
	}
	return tx, nil
}

// RemoveTransaction deletes a single transaction. Installments are owned by
// the card, not the transaction, so none are cascaded here.
func (s *Store) RemoveTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for _, t := range s.transactions {
		if t.ID == id {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: transaction %s", ErrNotFound, id)
	}
	if err := s.gw.DeleteTransaction(ctx, s.userID, id); err != nil {
		return remoteErr("delete transaction", err)
	}

	s.transactions = deleteBy(s.transactions, func(t models.Transaction) bool { return t.ID == id })
	return nil
}

// AccountBalance derives the balance of one account, zero when unknown.
func (s *Store) AccountBalance(id string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.accountIndex(id)
	if idx < 0 {
		return decimal.Zero
	}
	return AccountBalance(s.accounts[idx], s.transactions)
}

// Summary recomputes the filtered totals from the current mirror.
func (s *Store) Summary(filter Filter) Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Summarize(s.accounts, s.transactions, filter)
}

func (s *Store) validateTransaction(in *TransactionInput) error {
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	if !in.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if in.Kind != models.KindIncome && in.Kind != models.KindExpense {
		return fmt.Errorf("%w: kind must be income or expense", ErrValidation)
	}
	if strings.TrimSpace(in.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}
	if _, err := time.Parse(dateLayout, in.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	if in.AccountID != nil && in.CardID != nil {
		return fmt.Errorf("%w: transaction cannot reference both an account and a card", ErrValidation)
	}
	if in.Installments < 1 {
		in.Installments = 1
	}
	if in.Installments > 1 && in.CardID == nil {
		return fmt.Errorf("%w: installments require a card", ErrValidation)
	}
	if in.AccountID != nil && s.accountIndex(*in.AccountID) < 0 {
		return fmt.Errorf("%w: account %s", ErrNotFound, *in.AccountID)
	}
	if in.CardID != nil {
		if s.cardIndex(*in.CardID) < 0 {
			return fmt.Errorf("%w: card %s", ErrNotFound, *in.CardID)
		}
		if in.Kind != models.KindExpense {
			return fmt.Errorf("%w: card transactions must be expenses", ErrValidation)
		}
	}
	return nil
}

// compensate undoes a transaction insert whose follow-up step failed. The
// delete is best-effort: if it also fails the backing store keeps the row,
// but the mirror never saw it.
func (s *Store) compensate(ctx context.Context, transactionID string) {
	_ = s.gw.DeleteTransaction(ctx, s.userID, transactionID)
}

func (s *Store) accountIndex(id string) int {
	for i, a := range s.accounts {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) cardIndex(id string) int {
	for i, c := range s.cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func deleteBy[T any](items []T, match func(T) bool) []T {
	kept := items[:0:0]
	for _, item := range items {
		if !match(item) {
			kept = append(kept, item)
		}
	}
	return kept
}

func remoteErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrRemote, op, err)
}
