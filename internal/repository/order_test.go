package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/atinyakov/FotoShop/internal/models"
)

const lockImagesSQL = `SELECT id, price, stock FROM images WHERE active = true AND id = ANY($1) FOR UPDATE`

func setupOrderMock(t *testing.T) (*PostgresOrderRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	return NewPostgresOrderRepository(db), mock, func() { db.Close() }
}

func TestPlaceOrder_Success(t *testing.T) {
	repo, mock, cleanup := setupOrderMock(t)
	defer cleanup()

	lines := []models.OrderLineInput{{ItemID: 1, Quantity: 2}, {ItemID: 4, Quantity: 1}}
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockImagesSQL)).
		WithArgs(pq.Array([]int64{1, 4})).
		WillReturnRows(sqlmock.NewRows([]string{"id", "price", "stock"}).
			AddRow(int64(1), 10.0, 5).
			AddRow(int64(4), 5.0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO orders (customer_id, total, status) VALUES ($1, $2, $3)`)).
		WithArgs(int64(7), 25.0, models.OrderStatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(9), now))
	for _, l := range []struct {
		id    int64
		qty   int
		price float64
	}{{1, 2, 10}, {4, 1, 5}} {
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO order_lines (order_id, image_id, quantity, unit_price)`)).
			WithArgs(int64(9), l.id, l.qty, l.price).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE images SET stock = stock - $1 WHERE id = $2`)).
			WithArgs(l.qty, l.id).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	order, err := repo.PlaceOrder(context.Background(), 7, lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != 9 || order.Total != 25 || len(order.Lines) != 2 {
		t.Errorf("unexpected order: %+v", order)
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("Status = %q", order.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPlaceOrder_MissingImage(t *testing.T) {
	repo, mock, cleanup := setupOrderMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockImagesSQL)).
		WithArgs(pq.Array([]int64{2})).
		WillReturnRows(sqlmock.NewRows([]string{"id", "price", "stock"}))
	mock.ExpectRollback()

	_, err := repo.PlaceOrder(context.Background(), 7, []models.OrderLineInput{{ItemID: 2, Quantity: 1}})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPlaceOrder_OutOfStock(t *testing.T) {
	repo, mock, cleanup := setupOrderMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockImagesSQL)).
		WithArgs(pq.Array([]int64{1})).
		WillReturnRows(sqlmock.NewRows([]string{"id", "price", "stock"}).AddRow(int64(1), 10.0, 1))
	mock.ExpectRollback()

	_, err := repo.PlaceOrder(context.Background(), 7, []models.OrderLineInput{{ItemID: 1, Quantity: 3}})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("expected ErrInsufficientStock, got %v", err)
	}
	var le *LineError
	if !errors.As(err, &le) || le.ImageID != 1 {
		t.Errorf("expected LineError for image 1, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPlaceOrder_BeginError(t *testing.T) {
	repo, mock, cleanup := setupOrderMock(t)
	defer cleanup()

	mock.ExpectBegin().WillReturnError(errors.New("no conn"))

	_, err := repo.PlaceOrder(context.Background(), 7, []models.OrderLineInput{{ItemID: 1, Quantity: 1}})
	if err == nil || !regexp.MustCompile(`begin tx`).MatchString(err.Error()) {
		t.Errorf("expected begin tx error, got %v", err)
	}
}
