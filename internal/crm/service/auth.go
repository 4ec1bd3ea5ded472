package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/yourfavcrm/crm/internal/crm/domain"
	"github.com/yourfavcrm/crm/internal/crm/store"
	"github.com/yourfavcrm/crm/pkg/cryptox"
	"github.com/yourfavcrm/crm/pkg/idx"
	"github.com/yourfavcrm/crm/pkg/slogx"
)

var (
	// ErrEmailTaken reports a registration attempt with an email that is
	// already registered.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password so
	// login responses don't reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService owns registration, login, logout and session resolution.
type AuthService struct {
	Store store.Store
}

// Register creates a new user with a hashed password and mints a session for
// it. The plaintext password is hashed immediately and never stored or logged.
func (s *AuthService) Register(ctx context.Context, email, password string) (domain.User, string, error) {
	log := slogx.FromContext(ctx)

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, "", ErrEmailTaken
		}
		return domain.User{}, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.createSession(ctx, user.ID)
	if err != nil {
		return domain.User{}, "", err
	}

	log.Info("user registered", "user_id", user.ID)
	return user, token, nil
}

// Login verifies the credentials and mints a new session. Multiple concurrent
// sessions per user are allowed; logging in does not invalidate older ones.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, "", ErrInvalidCredentials
		}
		return domain.User{}, "", fmt.Errorf("lookup user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			// A stored hash we cannot parse is a data problem worth
			// surfacing, but the client still just sees bad credentials.
			log.Error("stored password hash is unusable", "user_id", user.ID, "err", err)
		}
		return domain.User{}, "", ErrInvalidCredentials
	}

	token, err := s.createSession(ctx, user.ID)
	if err != nil {
		return domain.User{}, "", err
	}

	log.Info("user logged in", "user_id", user.ID)
	return user, token, nil
}

// Logout invalidates the session. Unknown or empty tokens are a no-op so
// logout always succeeds.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.Store.Sessions().DeleteSession(ctx, token)
}

// ResolveSession maps a session token to a user id, or ErrNotFound.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (string, error) {
	return s.Store.Sessions().ResolveSession(ctx, token)
}

func (s *AuthService) createSession(ctx context.Context, userID string) (string, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	if err := s.Store.Sessions().CreateSession(ctx, token, userID); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}
