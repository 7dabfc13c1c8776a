// Package service provides the storefront business logic, delegating
// persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/atinyakov/FotoShop/internal/models"
	"github.com/atinyakov/FotoShop/internal/repository"
)

// AuthRepository defines the persistence operations
// required by the authentication service.
type AuthRepository interface {
	// CreateCustomer inserts a customer; a taken email yields repository.ErrConflict.
	CreateCustomer(ctx context.Context, name, email, passwordHash string) (models.Customer, error)
	// CustomerByEmail yields repository.ErrNotFound for an unknown email.
	CustomerByEmail(ctx context.Context, email string) (models.Customer, error)
	// CreateSession stores an issued token until expiresAt.
	CreateSession(ctx context.Context, token string, customerID int64, expiresAt time.Time) error
	// CustomerByToken resolves a token valid at now.
	CustomerByToken(ctx context.Context, token string, now time.Time) (models.Customer, error)
}

// AuthService registers customers, checks passwords and issues bearer
// tokens.
type AuthService struct {
	repo     AuthRepository
	tokenTTL time.Duration

	hashCost int
	now      func() time.Time
	newToken func() string
}

// NewAuthService constructs an AuthService issuing tokens valid for tokenTTL.
func NewAuthService(repo AuthRepository, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		repo:     repo,
		tokenTTL: tokenTTL,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
		newToken: uuid.NewString,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account and returns a session for it.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (models.AuthResponse, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || password == "" || !strings.Contains(email, "@") {
		return models.AuthResponse{}, fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("hash password: %w", err)
	}
	customer, err := s.repo.CreateCustomer(ctx, name, email, string(hash))
	if errors.Is(err, repository.ErrConflict) {
		return models.AuthResponse{}, ErrUserExists
	}
	if err != nil {
		return models.AuthResponse{}, err
	}
	return s.issue(ctx, customer)
}

// Login checks the password and returns a fresh session.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.AuthResponse, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return models.AuthResponse{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	customer, err := s.repo.CustomerByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return models.AuthResponse{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.AuthResponse{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)); err != nil {
		return models.AuthResponse{}, ErrInvalidCredentials
	}
	return s.issue(ctx, customer)
}

func (s *AuthService) issue(ctx context.Context, c models.Customer) (models.AuthResponse, error) {
	token := s.newToken()
	if err := s.repo.CreateSession(ctx, token, c.ID, s.now().Add(s.tokenTTL)); err != nil {
		return models.AuthResponse{}, err
	}
	return models.AuthResponse{Token: token, User: c.User()}, nil
}

// UserByToken resolves a bearer token to its user.
func (s *AuthService) UserByToken(ctx context.Context, token string) (models.User, error) {
	if token == "" {
		return models.User{}, ErrSessionNotFound
	}
	c, err := s.repo.CustomerByToken(ctx, token, s.now())
	if errors.Is(err, repository.ErrNotFound) {
		return models.User{}, ErrSessionNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return c.User(), nil
}
