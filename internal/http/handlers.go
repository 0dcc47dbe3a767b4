package http

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/erick-Breno/gestao/internal/auth"
	"github.com/erick-Breno/gestao/internal/ledger"
	"github.com/erick-Breno/gestao/internal/models"
)

// userStore resolves the ledger store for the authenticated user. It writes
// the error response itself so handlers can just return on nil.
func (s *Server) userStore(c *gin.Context) *ledger.Store {
	id := c.MustGet(identityKey).(auth.Identity)
	st, err := s.store(c.Request.Context(), id.UserID)
	if err != nil {
		s.fail(c, err)
		return nil
	}
	return st
}

type accountInput struct {
	Name           string          `json:"name"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// GET /v1/accounts
func (s *Server) listAccounts(c *gin.Context) {
	st := s.userStore(c)
	if st == nil {
		return
	}
	c.JSON(200, st.Accounts())
}

// POST /v1/accounts
func (s *Server) createAccount(c *gin.Context) {
	st := s.userStore(c)
	if st == nil {
		return
	}
	var input accountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	account, err := st.AddAccount(c.Request.Context(), input.Name, input.InitialBalance)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(201, account)
}

// PUT /v1/accounts/:id
func (s *Server) updateAccount(c *gin.Context) {
	st := s.userStore(c)
	if st == nil {
		return
	}
	var input accountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	account, err := st.UpdateAccount(c.Request.Context(), c.Param("id"), input.Name, input.InitialBalance)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(200, account)
}

// DELETE /v1/accounts/:id
func (s *Server) deleteAccount(c *gin.Context) {
	st := s.userStore(c)
	if st == nil {
		return
	}
	if err := st.RemoveAccount(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "account deleted"})
}

type cardInput struct {
	Name        string          `json:"name"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	DueDay      int             `json:"due_day"`
}

// GET /v1/cards
func (s *Server) listCards(c *gin.Context) {
	st := s.userStore(c)
	if st == nil {
		return
	}
	c.JSON(200, st.Cards())
}

// POST /v1/cards
func (s *Server) createCard(c *gin.Context) {
	st := s.userStore(c)
	if st == nil {
		return
	}
	var input cardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	card, err := st.AddCard(c.Request.Context(), input.Name, input.CreditLimit, input.DueDay)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(201, card)
}

// PUT /v1/cards/:id
func (s *Server) updateCard(c *gin.Context) {
	st := s.userStore(c)
	if st == nil {
		return
	}
	var input cardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	card, err := st.UpdateCard(c.Request.Context(), c.Param("id"), input.Name, input.CreditLimit, input.DueDay)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(200, card)
}

// DELETE /v1/cards/:id
func (s *Server) deleteCard(c *gin.Context) {
	st := s.userStore(c)
	if st == nil {
		return
	}
	if err := st.RemoveCard(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "card deleted"})
}

// GET /v1/transactions?filter=
func (s *Server) listTransactions(c *gin.Context) {
	st := s.userStore(c)
	if st == nil {
		return
	}
	filter := ledger.Filter(c.DefaultQuery("filter", string(ledger.FilterAll)))
	transactions := st.Transactions()
	filtered := make([]models.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if filter.Matches(t) {
			filtered = append(filtered, t)
		}
	}
	c.JSON(200, filtered)
}

// POST /v1/transactions
func (s *Server) createTransaction(c *gin.Context) {
	st := s.userStore(c)
	if st == nil {
		return
	}
	var input ledger.TransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	tx, err := st.AddTransaction(c.Request.Context(), input)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(201, tx)
}

// DELETE /v1/transactions/:id
func (s *Server) deleteTransaction(c *gin.Context) {
	st := s.userStore(c)
	if st == nil {
		return
	}
	if err := st.RemoveTransaction(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "transaction deleted"})
}

// GET /v1/installments
func (s *Server) listInstallments(c *gin.Context) {
	st := s.userStore(c)
	if st == nil {
		return
	}
	c.JSON(200, st.Installments())
}

// GET /v1/summary?filter=
func (s *Server) summary(c *gin.Context) {
	st := s.userStore(c)
	if st == nil {
		return
	}
	filter := ledger.Filter(c.DefaultQuery("filter", string(ledger.FilterAll)))
	c.JSON(200, st.Summary(filter))
}
