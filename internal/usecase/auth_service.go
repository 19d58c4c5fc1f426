package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/gridironhq/roster-api/internal/domain/user"
	"github.com/gridironhq/roster-api/internal/platform/id"
	"github.com/gridironhq/roster-api/internal/platform/logging"
)

const (
	usernameMinLength = 4
	usernameMaxLength = 20
	passwordMinLength = 6

	defaultSessionTTL = 24 * time.Hour
)

type SignupInput struct {
	Username    string
	Email       string
	Password    string
	PhoneNumber string
}

// AuthService handles signup, login, and bearer-token verification. Tokens
// are opaque server-side sessions, not JWTs, so logout revokes immediately.
type AuthService struct {
	userRepo    user.Repository
	sessionRepo user.SessionRepository
	idGen       id.Generator
	logger      *logging.Logger
	sessionTTL  time.Duration
	hashCost    int
	now         func() time.Time
}

func NewAuthService(
	userRepo user.Repository,
	sessionRepo user.SessionRepository,
	idGen id.Generator,
	logger *logging.Logger,
	sessionTTL time.Duration,
) *AuthService {
	if logger == nil {
		logger = logging.NewNop()
	}
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}

	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		idGen:       idGen,
		logger:      logger,
		sessionTTL:  sessionTTL,
		hashCost:    bcrypt.DefaultCost,
		now:         time.Now,
	}
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Signup")
	defer span.End()

	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.PhoneNumber = strings.TrimSpace(input.PhoneNumber)

	if n := len(input.Username); n < usernameMinLength || n > usernameMaxLength {
		return user.User{}, fmt.Errorf("%w: username must be between %d and %d characters",
			ErrInvalidInput, usernameMinLength, usernameMaxLength)
	}
	if len(input.Password) < passwordMinLength {
		return user.User{}, fmt.Errorf("%w: password must be at least %d characters",
			ErrInvalidInput, passwordMinLength)
	}
	if input.Email == "" {
		return user.User{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	if _, exists, err := s.userRepo.GetByUsername(ctx, input.Username); err != nil {
		return user.User{}, fmt.Errorf("get user by username: %w", err)
	} else if exists {
		return user.User{}, fmt.Errorf("%w: username is taken", ErrInvalidInput)
	}
	if _, exists, err := s.userRepo.GetByEmail(ctx, input.Email); err != nil {
		return user.User{}, fmt.Errorf("get user by email: %w", err)
	} else if exists {
		return user.User{}, fmt.Errorf("%w: email is taken", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}

	userID, err := s.idGen.NewID("usr")
	if err != nil {
		return user.User{}, fmt.Errorf("generate user id: %w", err)
	}

	now := s.now().UTC()
	item := user.User{
		ID:           userID,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		PhoneNumber:  input.PhoneNumber,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, item); err != nil {
		return user.User{}, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user signed up", "user_id", item.ID, "username", item.Username)
	return item, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (user.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return user.Session{}, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	item, exists, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return user.Session{}, fmt.Errorf("get user by username: %w", err)
	}
	if !exists {
		return user.Session{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(item.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return user.Session{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return user.Session{}, fmt.Errorf("compare password hash: %w", err)
	}

	token, err := s.idGen.NewID("ses")
	if err != nil {
		return user.Session{}, fmt.Errorf("generate session token: %w", err)
	}

	now := s.now().UTC()
	session := user.Session{
		Token:     token,
		UserID:    item.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return user.Session{}, fmt.Errorf("create session: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in", "user_id", item.ID)
	return session, nil
}

// Logout revokes the session. Unknown tokens are not an error; logout is
// idempotent.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Logout")
	defer span.End()

	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	if err := s.sessionRepo.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// VerifyAccessToken resolves a bearer token to the acting principal.
func (s *AuthService) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.VerifyAccessToken")
	defer span.End()

	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", ErrUnauthorized)
	}

	session, exists, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		return user.Principal{}, fmt.Errorf("get session by token: %w", err)
	}
	if !exists {
		return user.Principal{}, fmt.Errorf("%w: unknown session", ErrUnauthorized)
	}
	if !s.now().UTC().Before(session.ExpiresAt) {
		// Expired sessions are cleaned up lazily on first use.
		if err := s.sessionRepo.Delete(ctx, token); err != nil {
			s.logger.WarnContext(ctx, "delete expired session failed", "error", err)
		}
		return user.Principal{}, fmt.Errorf("%w: session expired", ErrUnauthorized)
	}

	item, exists, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return user.Principal{}, fmt.Errorf("get user by id: %w", err)
	}
	if !exists {
		return user.Principal{}, fmt.Errorf("%w: user no longer exists", ErrUnauthorized)
	}

	return user.Principal{UserID: item.ID, Username: item.Username}, nil
}
