// Package postgres implements the persistence gateway on a relational
// backend via gorm.
package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/erick-Breno/gestao/internal/models"
)

type Gateway struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}

func (g *Gateway) ListAccounts(ctx context.Context, userID string) ([]models.Account, error) {
	var accounts []models.Account
	err := g.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&accounts).Error
	return accounts, err
}

func (g *Gateway) ListCards(ctx context.Context, userID string) ([]models.Card, error) {
	var cards []models.Card
	err := g.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&cards).Error
	return cards, err
}

func (g *Gateway) ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := g.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&transactions).Error
	return transactions, err
}

func (g *Gateway) ListInstallments(ctx context.Context, userID string) ([]models.Installment, error) {
	var installments []models.Installment
	err := g.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("due_date asc").
		Find(&installments).Error
	return installments, err
}

func (g *Gateway) InsertAccount(ctx context.Context, account *models.Account) error {
	return g.db.WithContext(ctx).Create(account).Error
}

func (g *Gateway) UpdateAccount(ctx context.Context, account *models.Account) error {
	return g.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", account.ID, account.UserID).
		Save(account).Error
}

func (g *Gateway) DeleteAccount(ctx context.Context, userID, accountID string) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ? AND user_id = ?", accountID, userID).
			Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND user_id = ?", accountID, userID).
			Delete(&models.Account{}).Error
	})
}

func (g *Gateway) InsertCard(ctx context.Context, card *models.Card) error {
	return g.db.WithContext(ctx).Create(card).Error
}

func (g *Gateway) UpdateCard(ctx context.Context, card *models.Card) error {
	return g.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", card.ID, card.UserID).
		Save(card).Error
}

func (g *Gateway) DeleteCard(ctx context.Context, userID, cardID string) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ? AND user_id = ?", cardID, userID).
			Delete(&models.Installment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("card_id = ? AND user_id = ?", cardID, userID).
			Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND user_id = ?", cardID, userID).
			Delete(&models.Card{}).Error
	})
}

func (g *Gateway) InsertTransaction(ctx context.Context, transaction *models.Transaction) error {
	return g.db.WithContext(ctx).Create(transaction).Error
}

func (g *Gateway) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	return g.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", transactionID, userID).
		Delete(&models.Transaction{}).Error
}

func (g *Gateway) InsertInstallments(ctx context.Context, installments []models.Installment) error {
	if len(installments) == 0 {
		return nil
	}
	return g.db.WithContext(ctx).Create(&installments).Error
}
