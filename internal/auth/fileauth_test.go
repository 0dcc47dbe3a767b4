package auth

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestFileAuth(t *testing.T) (*File, string) {
	t.Helper()
	dir := t.TempDir()
	a, err := NewFile(dir)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	return a, dir
}

func TestFileAuthSignInLifecycle(t *testing.T) {
	a, _ := newTestFileAuth(t)
	ctx := context.Background()

	user, err := a.Register(ctx, "Ana@Example.com", "s3cret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "ana@example.com" {
		t.Errorf("email not normalized: %s", user.Email)
	}

	token, id, err := a.SignIn(ctx, "ana@example.com", "s3cret")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if id.UserID != user.ID {
		t.Errorf("identity = %+v, want user %s", id, user.ID)
	}

	got, err := a.Session(ctx, token)
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	if got.Email != "ana@example.com" {
		t.Errorf("session identity = %+v", got)
	}

	if err := a.SignOut(ctx, token); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if _, err := a.Session(ctx, token); !errors.Is(err, ErrNoSession) {
		t.Errorf("after sign-out: err = %v, want ErrNoSession", err)
	}
}

func TestFileAuthRejectsBadCredentials(t *testing.T) {
	a, _ := newTestFileAuth(t)
	ctx := context.Background()

	if _, err := a.Register(ctx, "ana@example.com", "s3cret"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, _, err := a.SignIn(ctx, "ana@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := a.SignIn(ctx, "nobody@example.com", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestFileAuthRejectsDuplicateEmail(t *testing.T) {
	a, _ := newTestFileAuth(t)
	ctx := context.Background()

	if _, err := a.Register(ctx, "ana@example.com", "one"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := a.Register(ctx, "ANA@example.com", "two"); err == nil {
		t.Error("duplicate email must be rejected")
	}
}

func TestFileAuthNeverStoresPlaintext(t *testing.T) {
	a, dir := newTestFileAuth(t)
	if _, err := a.Register(context.Background(), "ana@example.com", "s3cret-password"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, usersFileName))
	if err != nil {
		t.Fatalf("read users file: %v", err)
	}
	if strings.Contains(string(data), "s3cret-password") {
		t.Error("users file contains the plaintext password")
	}

	var stored []storedUser
	if err := json.Unmarshal(data, &stored); err != nil {
		t.Fatalf("decode users file: %v", err)
	}
	if len(stored) != 1 || !strings.HasPrefix(stored[0].PasswordHash, "$2") {
		t.Errorf("expected a bcrypt hash, got %+v", stored)
	}
}
