package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/atinyakov/FotoShop/internal/models"
	"github.com/atinyakov/FotoShop/internal/repository"
)

// OrderRepository stores orders atomically with their stock changes.
type OrderRepository interface {
	PlaceOrder(ctx context.Context, customerID int64, lines []models.OrderLineInput) (models.Order, error)
}

type OrderService struct {
	repo OrderRepository
}

func NewOrderService(repo OrderRepository) *OrderService {
	return &OrderService{repo: repo}
}

// PlaceOrder validates lines, merges repeated items, and places the order for
// customerID at current catalog prices.
func (s *OrderService) PlaceOrder(ctx context.Context, customerID int64, lines []models.OrderLineInput) (models.Order, error) {
	if len(lines) == 0 {
		return models.Order{}, ErrEmptyOrder
	}

	merged := make([]models.OrderLineInput, 0, len(lines))
	index := make(map[int64]int, len(lines))
	for _, l := range lines {
		if l.ItemID <= 0 || l.Quantity < 1 {
			return models.Order{}, fmt.Errorf("%w: item %d quantity %d", ErrInvalidInput, l.ItemID, l.Quantity)
		}
		if i, ok := index[l.ItemID]; ok {
			merged[i].Quantity += l.Quantity
			continue
		}
		index[l.ItemID] = len(merged)
		merged = append(merged, l)
	}

	order, err := s.repo.PlaceOrder(ctx, customerID, merged)
	var lineErr *repository.LineError
	if errors.As(err, &lineErr) {
		switch {
		case errors.Is(lineErr.Err, repository.ErrNotFound):
			return models.Order{}, fmt.Errorf("%w: image %d", ErrImageNotFound, lineErr.ImageID)
		case errors.Is(lineErr.Err, repository.ErrInsufficientStock):
			return models.Order{}, fmt.Errorf("%w: image %d", ErrOutOfStock, lineErr.ImageID)
		}
	}
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}
