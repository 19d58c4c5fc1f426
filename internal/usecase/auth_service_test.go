package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/gridironhq/roster-api/internal/infrastructure/repository/memory"
)

func newAuthServiceFixture(t *testing.T) *AuthService {
	t.Helper()

	return NewAuthService(
		memory.NewUserRepository(),
		memory.NewSessionRepository(),
		&sequenceIDGenerator{},
		nil,
		time.Hour,
	)
}

func validSignup() SignupInput {
	return SignupInput{
		Username: "gridfan",
		Email:    "fan@example.com",
		Password: "hunter22",
	}
}

func TestAuthService_SignupAndLogin(t *testing.T) {
	service := newAuthServiceFixture(t)

	created, err := service.Signup(t.Context(), validSignup())
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if created.PasswordHash == "hunter22" {
		t.Fatal("password must not be stored in the clear")
	}

	session, err := service.Login(t.Context(), "gridfan", "hunter22")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if session.UserID != created.ID {
		t.Fatalf("expected session for %s, got %s", created.ID, session.UserID)
	}

	principal, err := service.VerifyAccessToken(t.Context(), session.Token)
	if err != nil {
		t.Fatalf("verify token failed: %v", err)
	}
	if principal.UserID != created.ID || principal.Username != "gridfan" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestAuthService_SignupValidation(t *testing.T) {
	service := newAuthServiceFixture(t)

	tests := []struct {
		name  string
		input SignupInput
	}{
		{
			name:  "short username",
			input: SignupInput{Username: "abc", Email: "a@example.com", Password: "hunter22"},
		},
		{
			name:  "long username",
			input: SignupInput{Username: "abcdefghijklmnopqrstu", Email: "a@example.com", Password: "hunter22"},
		},
		{
			name:  "short password",
			input: SignupInput{Username: "gridfan", Email: "a@example.com", Password: "short"},
		},
		{
			name:  "missing email",
			input: SignupInput{Username: "gridfan", Password: "hunter22"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := service.Signup(t.Context(), tt.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestAuthService_SignupDuplicates(t *testing.T) {
	service := newAuthServiceFixture(t)

	if _, err := service.Signup(t.Context(), validSignup()); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	dupUsername := validSignup()
	dupUsername.Email = "other@example.com"
	if _, err := service.Signup(t.Context(), dupUsername); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate username, got %v", err)
	}

	dupEmail := validSignup()
	dupEmail.Username = "otherfan"
	if _, err := service.Signup(t.Context(), dupEmail); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate email, got %v", err)
	}
}

func TestAuthService_LoginRejectsBadCredentials(t *testing.T) {
	service := newAuthServiceFixture(t)

	if _, err := service.Signup(t.Context(), validSignup()); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if _, err := service.Login(t.Context(), "gridfan", "wrong-password"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong password, got %v", err)
	}
	if _, err := service.Login(t.Context(), "nobody", "hunter22"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown user, got %v", err)
	}
}

func TestAuthService_LogoutRevokesSession(t *testing.T) {
	service := newAuthServiceFixture(t)

	if _, err := service.Signup(t.Context(), validSignup()); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	session, err := service.Login(t.Context(), "gridfan", "hunter22")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := service.Logout(t.Context(), session.Token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := service.VerifyAccessToken(t.Context(), session.Token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized after logout, got %v", err)
	}

	// Logout is idempotent.
	if err := service.Logout(t.Context(), session.Token); err != nil {
		t.Fatalf("repeat logout failed: %v", err)
	}
}

func TestAuthService_ExpiredSessionRejected(t *testing.T) {
	service := newAuthServiceFixture(t)

	loginAt := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return loginAt }

	if _, err := service.Signup(t.Context(), validSignup()); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	session, err := service.Login(t.Context(), "gridfan", "hunter22")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	service.now = func() time.Time { return loginAt.Add(2 * time.Hour) }
	if _, err := service.VerifyAccessToken(t.Context(), session.Token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired session, got %v", err)
	}
}
