package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/erick-Breno/gestao/internal/models"
)

const usersFileName = "users.json"

// File authenticates against a users.json file in the data directory,
// replacing the hard-coded credential table of the original local variant.
// Only bcrypt hashes are stored.
type File struct {
	mu       sync.Mutex
	path     string
	sessions *sessions
}

func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &File{path: filepath.Join(dir, usersFileName), sessions: newSessions()}, nil
}

func (a *File) SignIn(_ context.Context, email, password string) (string, Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	a.mu.Lock()
	users, err := a.loadUsers()
	a.mu.Unlock()
	if err != nil {
		return "", Identity{}, err
	}

	for _, user := range users {
		if user.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			return "", Identity{}, ErrInvalidCredentials
		}
		id := Identity{UserID: user.ID, Email: user.Email}
		return a.sessions.create(id), id, nil
	}
	return "", Identity{}, ErrInvalidCredentials
}

func (a *File) Session(_ context.Context, token string) (Identity, error) {
	if id, ok := a.sessions.resolve(token); ok {
		return id, nil
	}
	return Identity{}, ErrNoSession
}

func (a *File) SignOut(_ context.Context, token string) error {
	a.sessions.drop(token)
	return nil
}

// Register appends a user with a bcrypt-hashed password to users.json.
func (a *File) Register(_ context.Context, email, password string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return models.User{}, errors.New("email and password are required")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	users, err := a.loadUsers()
	if err != nil {
		return models.User{}, err
	}
	for _, user := range users {
		if user.Email == email {
			return models.User{}, fmt.Errorf("user %s already exists", email)
		}
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
	users = append(users, storedUser{ID: user.ID, Email: user.Email, PasswordHash: user.PasswordHash})
	if err := a.saveUsers(users); err != nil {
		return models.User{}, err
	}
	return user, nil
}

type storedUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

func (a *File) loadUsers() ([]storedUser, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read users file: %w", err)
	}
	var users []storedUser
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("decode users file: %w", err)
	}
	return users, nil
}

func (a *File) saveUsers(users []storedUser) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("encode users file: %w", err)
	}
	tmp := a.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write users file: %w", err)
	}
	return os.Rename(tmp, a.path)
}
