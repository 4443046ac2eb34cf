// Package service contains the business logic layer.
//
// Handlers parse HTTP and delegate here; services enforce the rules and
// talk to the repositories; nothing in this package knows about status
// codes or JSON. Each service receives its repository as an interface so
// tests can substitute in-memory mocks.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/habitap/habitap/internal/apperror"
	"github.com/habitap/habitap/internal/auth"
	"github.com/habitap/habitap/internal/model"
	"github.com/habitap/habitap/internal/repository"
)

// UserService handles registration and login.
type UserService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	tokens    *auth.TokenService
	logger    *slog.Logger
}

func NewUserService(
	users repository.UserRepository,
	passwords *auth.PasswordService,
	tokens *auth.TokenService,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:     users,
		passwords: passwords,
		tokens:    tokens,
		logger:    logger,
	}
}

// Register creates a new account with a hashed password.
//
// The duplicate-email check reads before writing, so its conflict is
// reported before any hashing work. The email's unique index catches the
// remaining race at insert time with the same conflict error.
func (s *UserService) Register(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, apperror.Conflict("Email already registered")
	}

	hashed, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("registering user: %w", err)
	}

	user := &model.User{
		Email:          email,
		HashedPassword: hashed,
		IsActive:       true,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		s.logger.Error("failed to create user",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("registering user: %w", err)
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID.String()),
		slog.String("email", user.Email),
	)

	return user, nil
}

// Login verifies the credentials and issues an access token.
//
// An unknown email and a wrong password produce the identical error — the
// response never reveals which half of the credentials was wrong. The
// token's subject is the user's email; the middleware resolves it back to
// the account on each request.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", apperror.Unauthorized("Incorrect username or password")
	}

	if !s.passwords.Verify(user.HashedPassword, password) {
		return "", apperror.Unauthorized("Incorrect username or password")
	}

	token, err := s.tokens.Generate(user.Email)
	if err != nil {
		return "", fmt.Errorf("logging in user %s: %w", user.ID, err)
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID.String()))

	return token, nil
}
