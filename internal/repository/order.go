package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/atinyakov/FotoShop/internal/models"
)

// ErrInsufficientStock is returned when a line asks for more units than are
// in stock.
var ErrInsufficientStock = errors.New("insufficient stock")

// LineError ties a PlaceOrder failure to the image that caused it.
type LineError struct {
	ImageID int64
	Err     error
}

func (e *LineError) Error() string { return fmt.Sprintf("image %d: %v", e.ImageID, e.Err) }

func (e *LineError) Unwrap() error { return e.Err }

// PostgresOrderRepository places orders.
type PostgresOrderRepository struct {
	DB *sql.DB
}

func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{DB: db}
}

type stockRow struct {
	price float64
	stock int
}

// PlaceOrder prices lines at current catalog prices, decrements stock, and
// stores the order in one transaction. lines must have distinct item ids.
// A missing or inactive image yields ErrNotFound and short stock yields
// ErrInsufficientStock, each inside a *LineError.
func (r *PostgresOrderRepository) PlaceOrder(ctx context.Context, customerID int64, lines []models.OrderLineInput) (models.Order, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Order{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	ids := make([]int64, len(lines))
	for i, l := range lines {
		ids[i] = l.ItemID
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT id, price, stock FROM images WHERE active = true AND id = ANY($1) FOR UPDATE
	`, pq.Array(ids))
	if err != nil {
		return models.Order{}, fmt.Errorf("lock images: %w", err)
	}
	available := make(map[int64]stockRow, len(ids))
	for rows.Next() {
		var (
			id int64
			sr stockRow
		)
		if err := rows.Scan(&id, &sr.price, &sr.stock); err != nil {
			rows.Close()
			return models.Order{}, fmt.Errorf("scan: %w", err)
		}
		available[id] = sr
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return models.Order{}, fmt.Errorf("lock images: %w", err)
	}

	order := models.Order{CustomerID: customerID, Status: models.OrderStatusPending}
	for _, l := range lines {
		sr, ok := available[l.ItemID]
		if !ok {
			return models.Order{}, &LineError{ImageID: l.ItemID, Err: ErrNotFound}
		}
		if sr.stock < l.Quantity {
			return models.Order{}, &LineError{ImageID: l.ItemID, Err: ErrInsufficientStock}
		}
		order.Lines = append(order.Lines, models.OrderLine{ImageID: l.ItemID, Quantity: l.Quantity, UnitPrice: sr.price})
		order.Total += sr.price * float64(l.Quantity)
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (customer_id, total, status) VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, customerID, order.Total, order.Status).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return models.Order{}, fmt.Errorf("insert order: %w", err)
	}

	for _, l := range order.Lines {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_lines (order_id, image_id, quantity, unit_price) VALUES ($1, $2, $3, $4)
		`, order.ID, l.ImageID, l.Quantity, l.UnitPrice); err != nil {
			return models.Order{}, fmt.Errorf("insert line: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE images SET stock = stock - $1 WHERE id = $2
		`, l.Quantity, l.ImageID); err != nil {
			return models.Order{}, fmt.Errorf("decrement stock: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Order{}, fmt.Errorf("commit: %w", err)
	}
	return order, nil
}
