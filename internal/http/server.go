package http

import (
	"context"
	"errors"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/erick-Breno/gestao/internal/auth"
	"github.com/erick-Breno/gestao/internal/config"
	"github.com/erick-Breno/gestao/internal/gateway"
	"github.com/erick-Breno/gestao/internal/ledger"
)

type Server struct {
	cfg   *config.Config
	gw    gateway.Gateway
	authn auth.Authenticator
	log   zerolog.Logger

	mu     sync.Mutex
	stores map[string]*ledger.Store
}

func NewServer(cfg *config.Config, gw gateway.Gateway, authn auth.Authenticator, log zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors(cfg))

	s := &Server{
		cfg:    cfg,
		gw:     gw,
		authn:  authn,
		log:    log,
		stores: make(map[string]*ledger.Store),
	}
	r.Use(s.logging())

	r.POST("/v1/auth/login", s.login)
	r.POST("/v1/auth/logout", s.logout)
	r.GET("/v1/auth/session", s.session)

	authorized := r.Group("/v1")
	authorized.Use(s.authMiddleware())
	{
		authorized.GET("/accounts", s.listAccounts)
		authorized.POST("/accounts", s.createAccount)
		authorized.PUT("/accounts/:id", s.updateAccount)
		authorized.DELETE("/accounts/:id", s.deleteAccount)

		authorized.GET("/cards", s.listCards)
		authorized.POST("/cards", s.createCard)
		authorized.PUT("/cards/:id", s.updateCard)
		authorized.DELETE("/cards/:id", s.deleteCard)

		authorized.GET("/transactions", s.listTransactions)
		authorized.POST("/transactions", s.createTransaction)
		authorized.DELETE("/transactions/:id", s.deleteTransaction)

		authorized.GET("/installments", s.listInstallments)

		authorized.GET("/summary", s.summary)
		authorized.GET("/reports/categories", s.reportCategories)
		authorized.GET("/reports/accounts", s.reportAccounts)
		authorized.GET("/reports/timeline", s.reportTimeline)
	}

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	return r
}

// store returns the session-scoped ledger store for the user, loading it
// from the gateway on first use.
func (s *Server) store(ctx context.Context, userID string) (*ledger.Store, error) {
	s.mu.Lock()
	if st, ok := s.stores[userID]; ok {
		s.mu.Unlock()
		return st, nil
	}
	s.mu.Unlock()

	st := ledger.NewStore(s.gw, userID)
	if err := st.Load(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.stores[userID]; ok {
		return existing, nil
	}
	s.stores[userID] = st
	return st, nil
}

// dropStore forgets a user's cached store, forcing a reload next request.
func (s *Server) dropStore(userID string) {
	s.mu.Lock()
	delete(s.stores, userID)
	s.mu.Unlock()
}

// fail maps domain errors to HTTP statuses.
func (s *Server) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrValidation):
		c.JSON(400, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrNotFound):
		c.JSON(404, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrUnauthorized):
		c.JSON(403, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrRemote):
		s.log.Error().Err(err).Msg("persistence failure")
		c.JSON(502, gin.H{"error": "persistence failure, try again"})
	default:
		s.log.Error().Err(err).Msg("internal error")
		c.JSON(500, gin.H{"error": "internal error"})
	}
}
