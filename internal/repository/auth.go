// Package repository provides the PostgreSQL persistence behind the
// storefront services.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/atinyakov/FotoShop/internal/models"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique constraint rejects the write.
	ErrConflict = errors.New("already exists")
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// PostgresAuthRepository stores customers and their auth sessions.
type PostgresAuthRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresAuthRepository creates a PostgresAuthRepository over db.
func NewPostgresAuthRepository(db *sql.DB) *PostgresAuthRepository {
	return &PostgresAuthRepository{DB: db}
}

// CreateCustomer inserts a customer and returns it with its id. A taken
// email yields ErrConflict.
func (r *PostgresAuthRepository) CreateCustomer(ctx context.Context, name, email, passwordHash string) (models.Customer, error) {
	c := models.Customer{Name: name, Email: email, PasswordHash: passwordHash}
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO customers (name, email, password_hash) VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, name, email, passwordHash).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return models.Customer{}, ErrConflict
		}
		return models.Customer{}, fmt.Errorf("CreateCustomer: %w", err)
	}
	return c, nil
}

// CustomerByEmail looks a customer up by email.
func (r *PostgresAuthRepository) CustomerByEmail(ctx context.Context, email string) (models.Customer, error) {
	var c models.Customer
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, created_at FROM customers WHERE email = $1
	`, email).Scan(&c.ID, &c.Name, &c.Email, &c.PasswordHash, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Customer{}, ErrNotFound
	}
	if err != nil {
		return models.Customer{}, fmt.Errorf("CustomerByEmail: %w", err)
	}
	return c, nil
}

// CreateSession stores an issued token.
func (r *PostgresAuthRepository) CreateSession(ctx context.Context, token string, customerID int64, expiresAt time.Time) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO sessions (token, customer_id, expires_at) VALUES ($1, $2, $3)
	`, token, customerID, expiresAt)
	if err != nil {
		return fmt.Errorf("CreateSession: %w", err)
	}
	return nil
}

// CustomerByToken resolves a token that has not expired at now.
func (r *PostgresAuthRepository) CustomerByToken(ctx context.Context, token string, now time.Time) (models.Customer, error) {
	var c models.Customer
	err := r.DB.QueryRowContext(ctx, `
		SELECT c.id, c.name, c.email, c.password_hash, c.created_at
		  FROM sessions s JOIN customers c ON c.id = s.customer_id
		 WHERE s.token = $1 AND s.expires_at > $2
	`, token, now).Scan(&c.ID, &c.Name, &c.Email, &c.PasswordHash, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Customer{}, ErrNotFound
	}
	if err != nil {
		return models.Customer{}, fmt.Errorf("CustomerByToken: %w", err)
	}
	return c, nil
}
