// Package localstore implements the persistence gateway on per-user JSON
// snapshot files, for running the tracker without a database. Snapshots are
// validated against an embedded JSON schema on load and rewritten atomically
// on every mutation.
package localstore

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/erick-Breno/gestao/internal/models"
)

//go:embed schema.json
var snapshotSchema string

type snapshot struct {
	Accounts     []models.Account     `json:"accounts"`
	Cards        []models.Card        `json:"cards"`
	Transactions []models.Transaction `json:"transactions"`
	Installments []models.Installment `json:"installments"`
}

type Gateway struct {
	mu     sync.Mutex
	dir    string
	schema *gojsonschema.Schema
}

func New(dir string) (*Gateway, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(snapshotSchema))
	if err != nil {
		return nil, fmt.Errorf("compile snapshot schema: %w", err)
	}
	return &Gateway{dir: dir, schema: schema}, nil
}

func (g *Gateway) path(userID string) string {
	return filepath.Join(g.dir, userID+".json")
}

// load reads and validates a user's snapshot. A missing file is an empty
// ledger, not an error.
func (g *Gateway) load(userID string) (*snapshot, error) {
	data, err := os.ReadFile(g.path(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return &snapshot{}, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	result, err := g.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("validate snapshot: %w", err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return nil, fmt.Errorf("snapshot for user %s is corrupt: %s", userID, strings.Join(details, "; "))
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

// save writes the snapshot through a temp file and rename so a crash never
// leaves a half-written ledger behind.
func (g *Gateway) save(userID string, snap *snapshot) error {
	// nil slices marshal as null, which the schema rejects on the next load
	if snap.Accounts == nil {
		snap.Accounts = []models.Account{}
	}
	if snap.Cards == nil {
		snap.Cards = []models.Card{}
	}
	if snap.Transactions == nil {
		snap.Transactions = []models.Transaction{}
	}
	if snap.Installments == nil {
		snap.Installments = []models.Installment{}
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	tmp := g.path(userID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, g.path(userID)); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

func (g *Gateway) mutate(userID string, fn func(*snapshot) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	snap, err := g.load(userID)
	if err != nil {
		return err
	}
	if err := fn(snap); err != nil {
		return err
	}
	return g.save(userID, snap)
}

func (g *Gateway) ListAccounts(_ context.Context, userID string) ([]models.Account, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	snap, err := g.load(userID)
	if err != nil {
		return nil, err
	}
	accounts := snap.Accounts
	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})
	return accounts, nil
}

func (g *Gateway) ListCards(_ context.Context, userID string) ([]models.Card, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	snap, err := g.load(userID)
	if err != nil {
		return nil, err
	}
	cards := snap.Cards
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].CreatedAt.Before(cards[j].CreatedAt)
	})
	return cards, nil
}

func (g *Gateway) ListTransactions(_ context.Context, userID string) ([]models.Transaction, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	snap, err := g.load(userID)
	if err != nil {
		return nil, err
	}
	transactions := snap.Transactions
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].CreatedAt.After(transactions[j].CreatedAt)
	})
	return transactions, nil
}

func (g *Gateway) ListInstallments(_ context.Context, userID string) ([]models.Installment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	snap, err := g.load(userID)
	if err != nil {
		return nil, err
	}
	installments := snap.Installments
	sort.SliceStable(installments, func(i, j int) bool {
		return installments[i].DueDate < installments[j].DueDate
	})
	return installments, nil
}

func (g *Gateway) InsertAccount(_ context.Context, account *models.Account) error {
	return g.mutate(account.UserID, func(snap *snapshot) error {
		snap.Accounts = append(snap.Accounts, *account)
		return nil
	})
}

func (g *Gateway) UpdateAccount(_ context.Context, account *models.Account) error {
	return g.mutate(account.UserID, func(snap *snapshot) error {
		for i := range snap.Accounts {
			if snap.Accounts[i].ID == account.ID {
				snap.Accounts[i] = *account
				return nil
			}
		}
		return fmt.Errorf("account %s not found", account.ID)
	})
}

func (g *Gateway) DeleteAccount(_ context.Context, userID, accountID string) error {
	return g.mutate(userID, func(snap *snapshot) error {
		snap.Accounts = filterSlice(snap.Accounts, func(a models.Account) bool { return a.ID != accountID })
		snap.Transactions = filterSlice(snap.Transactions, func(t models.Transaction) bool {
			return t.AccountID == nil || *t.AccountID != accountID
		})
		return nil
	})
}

func (g *Gateway) InsertCard(_ context.Context, card *models.Card) error {
	return g.mutate(card.UserID, func(snap *snapshot) error {
		snap.Cards = append(snap.Cards, *card)
		return nil
	})
}

func (g *Gateway) UpdateCard(_ context.Context, card *models.Card) error {
	return g.mutate(card.UserID, func(snap *snapshot) error {
		for i := range snap.Cards {
			if snap.Cards[i].ID == card.ID {
				snap.Cards[i] = *card
				return nil
			}
		}
		return fmt.Errorf("card %s not found", card.ID)
	})
}

func (g *Gateway) DeleteCard(_ context.Context, userID, cardID string) error {
	return g.mutate(userID, func(snap *snapshot) error {
		snap.Cards = filterSlice(snap.Cards, func(c models.Card) bool { return c.ID != cardID })
		snap.Transactions = filterSlice(snap.Transactions, func(t models.Transaction) bool {
			return t.CardID == nil || *t.CardID != cardID
		})
		snap.Installments = filterSlice(snap.Installments, func(i models.Installment) bool {
			return i.CardID != cardID
		})
		return nil
	})
}

func (g *Gateway) InsertTransaction(_ context.Context, transaction *models.Transaction) error {
	return g.mutate(transaction.UserID, func(snap *snapshot) error {
		snap.Transactions = append(snap.Transactions, *transaction)
		return nil
	})
}

func (g *Gateway) DeleteTransaction(_ context.Context, userID, transactionID string) error {
	return g.mutate(userID, func(snap *snapshot) error {
		snap.Transactions = filterSlice(snap.Transactions, func(t models.Transaction) bool {
			return t.ID != transactionID
		})
		return nil
	})
}

func (g *Gateway) InsertInstallments(_ context.Context, installments []models.Installment) error {
	if len(installments) == 0 {
		return nil
	}
	return g.mutate(installments[0].UserID, func(snap *snapshot) error {
		snap.Installments = append(snap.Installments, installments...)
		return nil
	})
}

func filterSlice[T any](items []T, keep func(T) bool) []T {
	kept := items[:0:0]
	for _, item := range items {
		if keep(item) {
			kept = append(kept, item)
		}
	}
	return kept
}
