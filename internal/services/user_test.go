package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"roomscheduler/internal/domain"
)

type stubHasher struct{}

func (stubHasher) GenerateSalt() (string, error) { return "salt", nil }
func (stubHasher) Hash(salt, password string) (string, error) {
	return salt + ":" + password, nil
}
func (stubHasher) Compare(hash, salt, password string) error {
	if hash != salt+":"+password {
		return errors.New("mismatch")
	}
	return nil
}

type stubIssuer struct{}

func (stubIssuer) Issue(userID, email string, expiry time.Duration) (string, error) {
	return "token-for-" + userID, nil
}

func TestSignUp_And_Login(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, stubHasher{}, stubIssuer{}, time.Hour)

	user, err := svc.SignUp(context.Background(), "Alice@Example.com", "Alice", "hunter2hunter2")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.ID == "" {
		t.Fatal("expected an id to be assigned")
	}

	token, got, err := svc.Login(context.Background(), "alice@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token != "token-for-"+user.ID {
		t.Fatalf("unexpected token %q", token)
	}
	if got.ID != user.ID {
		t.Fatalf("unexpected user %+v", got)
	}
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, stubHasher{}, stubIssuer{}, time.Hour)

	if _, err := svc.SignUp(context.Background(), "alice@example.com", "Alice", "hunter2hunter2"); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, err := svc.SignUp(context.Background(), "alice@example.com", "Alice Again", "hunter2hunter2"); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestSignUp_Validation(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, stubHasher{}, stubIssuer{}, time.Hour)

	if _, err := svc.SignUp(context.Background(), "not-an-email", "X", "hunter2hunter2"); err == nil {
		t.Fatal("expected invalid email to be rejected")
	}
	if _, err := svc.SignUp(context.Background(), "ok@example.com", "X", "short"); err == nil {
		t.Fatal("expected short password to be rejected")
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, stubHasher{}, stubIssuer{}, time.Hour)

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}

	if _, err := svc.SignUp(context.Background(), "alice@example.com", "Alice", "hunter2hunter2"); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "alice@example.com", "wrong-password"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
}
