package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/atinyakov/FotoShop/internal/models"
	"github.com/atinyakov/FotoShop/internal/repository"
)

type mockOrderRepo struct {
	PlaceOrderFunc func(ctx context.Context, customerID int64, lines []models.OrderLineInput) (models.Order, error)
}

func (m *mockOrderRepo) PlaceOrder(ctx context.Context, customerID int64, lines []models.OrderLineInput) (models.Order, error) {
	return m.PlaceOrderFunc(ctx, customerID, lines)
}

type mockCatalogRepo struct {
	images []models.Image
	err    error
}

func (m mockCatalogRepo) ActiveImages(context.Context) ([]models.Image, error) { return m.images, m.err }

func TestPlaceOrder_MergesLines(t *testing.T) {
	repo := &mockOrderRepo{
		PlaceOrderFunc: func(_ context.Context, customerID int64, lines []models.OrderLineInput) (models.Order, error) {
			want := []models.OrderLineInput{{ItemID: 1, Quantity: 3}, {ItemID: 2, Quantity: 1}}
			if !reflect.DeepEqual(lines, want) {
				t.Errorf("lines = %+v; want %+v", lines, want)
			}
			return models.Order{ID: 5, CustomerID: customerID, Status: models.OrderStatusPending}, nil
		},
	}

	order, err := NewOrderService(repo).PlaceOrder(context.Background(), 7, []models.OrderLineInput{
		{ItemID: 1, Quantity: 1}, {ItemID: 2, Quantity: 1}, {ItemID: 1, Quantity: 2},
	})
	if err != nil {
		t.Fatalf("PlaceOrder returned error: %v", err)
	}
	if order.ID != 5 || order.CustomerID != 7 {
		t.Errorf("order = %+v", order)
	}
}

func TestPlaceOrder_Validation(t *testing.T) {
	svc := NewOrderService(&mockOrderRepo{
		PlaceOrderFunc: func(context.Context, int64, []models.OrderLineInput) (models.Order, error) {
			t.Error("repository must not be called")
			return models.Order{}, nil
		},
	})

	if _, err := svc.PlaceOrder(context.Background(), 1, nil); !errors.Is(err, ErrEmptyOrder) {
		t.Errorf("empty: got %v", err)
	}
	if _, err := svc.PlaceOrder(context.Background(), 1, []models.OrderLineInput{{ItemID: 1, Quantity: 0}}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("zero quantity: got %v", err)
	}
	if _, err := svc.PlaceOrder(context.Background(), 1, []models.OrderLineInput{{ItemID: 0, Quantity: 1}}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("zero id: got %v", err)
	}
}

func TestPlaceOrder_MapsRepositoryErrors(t *testing.T) {
	cases := []struct {
		name    string
		repoErr error
		want    error
	}{
		{"missing image", &repository.LineError{ImageID: 3, Err: repository.ErrNotFound}, ErrImageNotFound},
		{"short stock", &repository.LineError{ImageID: 3, Err: repository.ErrInsufficientStock}, ErrOutOfStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewOrderService(&mockOrderRepo{
				PlaceOrderFunc: func(context.Context, int64, []models.OrderLineInput) (models.Order, error) {
					return models.Order{}, tc.repoErr
				},
			})
			_, err := svc.PlaceOrder(context.Background(), 1, []models.OrderLineInput{{ItemID: 3, Quantity: 1}})
			if !errors.Is(err, tc.want) {
				t.Errorf("got %v; want %v", err, tc.want)
			}
			if err.Error() != tc.want.Error()+": image 3" {
				t.Errorf("message = %q", err.Error())
			}
		})
	}

	wantErr := errors.New("db error")
	svc := NewOrderService(&mockOrderRepo{
		PlaceOrderFunc: func(context.Context, int64, []models.OrderLineInput) (models.Order, error) {
			return models.Order{}, wantErr
		},
	})
	if _, err := svc.PlaceOrder(context.Background(), 1, []models.OrderLineInput{{ItemID: 3, Quantity: 1}}); !errors.Is(err, wantErr) {
		t.Errorf("got %v; want %v", err, wantErr)
	}
}

func TestListImages(t *testing.T) {
	want := []models.Image{{ID: 1, Title: "Dunes", Active: true}}
	got, err := NewCatalogService(mockCatalogRepo{images: want}).ListImages(context.Background())
	if err != nil || !reflect.DeepEqual(got, want) {
		t.Errorf("ListImages = %+v, %v", got, err)
	}

	wantErr := errors.New("db error")
	if _, err := NewCatalogService(mockCatalogRepo{err: wantErr}).ListImages(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("got %v; want %v", err, wantErr)
	}
}
