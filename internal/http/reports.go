package http

import (
	"github.com/gin-gonic/gin"

	"github.com/erick-Breno/gestao/internal/ledger"
	"github.com/erick-Breno/gestao/internal/report"
)

// GET /v1/reports/categories?filter=
func (s *Server) reportCategories(c *gin.Context) {
	st := s.userStore(c)
	if st == nil {
		return
	}
	filter := ledger.Filter(c.DefaultQuery("filter", string(ledger.FilterAll)))
	c.JSON(200, report.Categories(st.Transactions(), filter))
}

// GET /v1/reports/accounts
func (s *Server) reportAccounts(c *gin.Context) {
	st := s.userStore(c)
	if st == nil {
		return
	}
	c.JSON(200, report.AccountBalances(st.Accounts(), st.Transactions()))
}

// GET /v1/reports/timeline?filter=
func (s *Server) reportTimeline(c *gin.Context) {
	st := s.userStore(c)
	if st == nil {
		return
	}
	filter := ledger.Filter(c.DefaultQuery("filter", string(ledger.FilterAll)))
	c.JSON(200, report.MonthlyTimeline(st.Transactions(), filter))
}
