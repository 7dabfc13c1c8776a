// Package cart keeps the client's shopping cart: an ordered list of lines
// with a derived total, mirrored into the persistence bridge on every
// mutation.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/atinyakov/FotoShop/internal/client/storage"
)

var (
	// ErrInvalidQuantity is returned when adding fewer than one unit.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrCorruptCart is returned by Restore when the persisted payload is unusable.
	ErrCorruptCart = errors.New("persisted cart is corrupt")
)

// Item is the part of a catalog entry the cart needs.
type Item struct {
	ID        int64
	Name      string
	UnitPrice float64
}

// Line is one cart entry. It is also the persisted shape.
type Line struct {
	ItemID    int64   `json:"itemId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

// Subtotal is UnitPrice × Quantity.
func (l Line) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// Cart is safe for concurrent use.
type Cart struct {
	store storage.Store
	log   *zap.Logger

	mu    sync.Mutex
	lines []Line
	total float64
}

// New returns an empty cart persisting into store.
func New(store storage.Store, log *zap.Logger) *Cart {
	return &Cart{store: store, log: log}
}

// Add merges quantity units of item into the cart and persists the result.
func (c *Cart) Add(ctx context.Context, item Item, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	merged := false
	for i := range c.lines {
		if c.lines[i].ItemID == item.ID {
			c.lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		c.lines = append(c.lines, Line{
			ItemID:    item.ID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  quantity,
		})
	}
	c.recompute()
	return c.persist(ctx)
}

// Remove drops the line for itemID, if any, and persists the result.
func (c *Cart) Remove(ctx context.Context, itemID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ItemID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			break
		}
	}
	c.recompute()
	return c.persist(ctx)
}

// Clear empties the cart and removes the persisted key.
func (c *Cart) Clear(ctx context.Context) error {
	c.Reset()
	if err := c.store.Remove(ctx, storage.KeyCart); err != nil {
		c.log.Error("failed to remove persisted cart", zap.Error(err))
		return fmt.Errorf("remove cart: %w", err)
	}
	return nil
}

// Reset empties the in-memory cart without touching storage.
func (c *Cart) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.total = 0
}

// Restore replaces the in-memory cart with the persisted one. A missing key
// yields an empty cart. On ErrCorruptCart the cart is left empty.
func (c *Cart) Restore(ctx context.Context) error {
	raw, ok, err := c.store.Get(ctx, storage.KeyCart)
	if err != nil {
		return fmt.Errorf("read cart: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.total = 0
	if !ok {
		return nil
	}

	var persisted []Line
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptCart, err)
	}
	lines := make([]Line, 0, len(persisted))
	index := make(map[int64]int, len(persisted))
	for _, l := range persisted {
		if l.Quantity < 1 {
			return fmt.Errorf("%w: item %d has quantity %d", ErrCorruptCart, l.ItemID, l.Quantity)
		}
		if i, dup := index[l.ItemID]; dup {
			lines[i].Quantity += l.Quantity
			continue
		}
		index[l.ItemID] = len(lines)
		lines = append(lines, l)
	}
	c.lines = lines
	c.recompute()
	return nil
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Total is Σ UnitPrice × Quantity over all lines.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Len is the number of distinct lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// recompute derives the total from scratch; callers hold mu.
func (c *Cart) recompute() {
	var total float64
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	c.total = total
}

func (c *Cart) snapshot() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// persist writes the full snapshot; callers hold mu so writes land in
// mutation order.
func (c *Cart) persist(ctx context.Context) error {
	lines := c.lines
	if lines == nil {
		lines = []Line{}
	}
	b, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := c.store.Set(ctx, storage.KeyCart, string(b)); err != nil {
		c.log.Error("failed to persist cart", zap.Error(err), zap.Int("lines", len(lines)))
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}
