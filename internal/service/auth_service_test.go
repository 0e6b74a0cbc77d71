package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gymdesk/gym-app/internal/domain"

	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "test-secret-do-not-use"

func TestRegisterAndLogin_RoundTrip(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := NewAuthService(userRepo, testSecret, time.Hour)

	user, err := svc.Register(context.Background(), "Ana", "ana@example.com", "correct horse", domain.RoleMember)
	if err != nil {
		t.Fatalf("unexpected register error: %v", err)
	}
	if user.PasswordHash != "" {
		t.Error("expected password hash stripped from register response")
	}
	if user.Role != domain.RoleMember {
		t.Errorf("expected role %q, got %q", domain.RoleMember, user.Role)
	}

	token, loggedIn, err := svc.Login(context.Background(), "ana@example.com", "correct horse")
	if err != nil {
		t.Fatalf("unexpected login error: %v", err)
	}
	if loggedIn.PasswordHash != "" {
		t.Error("expected password hash stripped from login response")
	}

	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("expected valid token, got err=%v", err)
	}
	if claims.UserID != user.ID.Hex() {
		t.Errorf("expected uid claim %q, got %q", user.ID.Hex(), claims.UserID)
	}
	if claims.Role != domain.RoleMember {
		t.Errorf("expected role claim %q, got %q", domain.RoleMember, claims.Role)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := NewAuthService(userRepo, testSecret, time.Hour)

	if _, err := svc.Register(context.Background(), "Ana", "ana@example.com", "password1", domain.RoleMember); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := svc.Register(context.Background(), "Imposter", "ana@example.com", "password2", domain.RoleTrainer)
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := NewAuthService(userRepo, testSecret, time.Hour)

	if _, err := svc.Register(context.Background(), "Ana", "ana@example.com", "password1", domain.RoleMember); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _, err := svc.Login(context.Background(), "ana@example.com", "wrong")
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := NewAuthService(userRepo, testSecret, time.Hour)

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed, got %v", err)
	}
}
