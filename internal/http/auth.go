package http

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/erick-Breno/gestao/internal/auth"
)

type loginResponse struct {
	Token string        `json:"token"`
	User  auth.Identity `json:"user"`
}

// POST /v1/auth/login
func (s *Server) login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	token, id, err := s.authn.SignIn(c.Request.Context(), input.Email, input.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(401, gin.H{"error": "invalid_credentials"})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(200, loginResponse{Token: token, User: id})
}

// POST /v1/auth/logout
func (s *Server) logout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(401, gin.H{"error": "authorization_header_missing"})
		return
	}

	if id, err := s.authn.Session(c.Request.Context(), token); err == nil {
		s.dropStore(id.UserID)
	}
	if err := s.authn.SignOut(c.Request.Context(), token); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "signed out"})
}

// GET /v1/auth/session
func (s *Server) session(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(200, gin.H{"authenticated": false})
		return
	}
	id, err := s.authn.Session(c.Request.Context(), token)
	if err != nil {
		c.JSON(200, gin.H{"authenticated": false})
		return
	}
	c.JSON(200, gin.H{"authenticated": true, "user": id})
}

func bearerToken(c *gin.Context) string {
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
