package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/erick-Breno/gestao/internal/models"
)

// DB authenticates against the users table of the relational backend.
type DB struct {
	db       *gorm.DB
	sessions *sessions
}

func NewDB(db *gorm.DB) *DB {
	return &DB{db: db, sessions: newSessions()}
}

func (a *DB) SignIn(ctx context.Context, email, password string) (string, Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := a.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", Identity{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", Identity{}, fmt.Errorf("look up user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", Identity{}, ErrInvalidCredentials
	}

	id := Identity{UserID: user.ID, Email: user.Email}
	return a.sessions.create(id), id, nil
}

func (a *DB) Session(_ context.Context, token string) (Identity, error) {
	if id, ok := a.sessions.resolve(token); ok {
		return id, nil
	}
	return Identity{}, ErrNoSession
}

func (a *DB) SignOut(_ context.Context, token string) error {
	a.sessions.drop(token)
	return nil
}

// Register creates a user with a bcrypt-hashed password. Used by setup
// tooling rather than the HTTP surface.
func (a *DB) Register(ctx context.Context, email, password string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return models.User{}, errors.New("email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := a.db.WithContext(ctx).Create(&user).Error; err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
