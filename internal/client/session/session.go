// Package session owns the client's authentication state and mirrors it into
// the persistence bridge under the token and user keys.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/atinyakov/FotoShop/internal/client/cart"
	"github.com/atinyakov/FotoShop/internal/client/storage"
	"github.com/atinyakov/FotoShop/internal/models"
)

// ErrInvalidSession is returned by Save for an empty token or incomplete user.
var ErrInvalidSession = errors.New("session requires a token and a user with id, name and email")

// Notifier is told about every Save, Restore and Clear, after the manager's
// lock has been released.
type Notifier interface {
	SessionChanged(ctx context.Context, prev, next State)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, prev, next State)

func (f NotifierFunc) SessionChanged(ctx context.Context, prev, next State) { f(ctx, prev, next) }

// Cart is the part of the cart the session drives on restore and logout.
type Cart interface {
	Restore(ctx context.Context) error
	Reset()
}

// Manager is safe for concurrent use.
type Manager struct {
	store    storage.Store
	cart     Cart
	notifier Notifier
	log      *zap.Logger

	mu    sync.Mutex
	state State
}

// New returns an anonymous manager. notifier may be nil.
func New(store storage.Store, c Cart, notifier Notifier, log *zap.Logger) *Manager {
	return &Manager{store: store, cart: c, notifier: notifier, log: log}
}

// SetNotifier replaces the notifier.
func (m *Manager) SetNotifier(n Notifier) {
	m.mu.Lock()
	m.notifier = n
	m.mu.Unlock()
}

// State returns the current snapshot.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Save authenticates the session and persists token and user. A storage
// failure is logged and returned; the in-memory state is kept.
func (m *Manager) Save(ctx context.Context, token string, user models.User) error {
	next, err := NewAuthenticated(token, user)
	if err != nil {
		return err
	}

	m.mu.Lock()
	prev := m.state
	m.state = next
	err = m.persistLocked(ctx, token, user)
	n := m.notifier
	m.mu.Unlock()

	m.notify(ctx, n, prev, next)
	return err
}

func (m *Manager) persistLocked(ctx context.Context, token string, user models.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := m.store.Set(ctx, storage.KeyToken, token); err != nil {
		m.log.Error("failed to persist session token", zap.Error(err))
		return fmt.Errorf("persist token: %w", err)
	}
	if err := m.store.Set(ctx, storage.KeyUser, string(payload)); err != nil {
		m.log.Error("failed to persist session user", zap.Error(err), zap.Int64("user_id", user.ID))
		return fmt.Errorf("persist user: %w", err)
	}
	return nil
}

// Restore rebuilds the session from the bridge. Only when both keys are
// present is the session authenticated and the cart restored; a corrupt user
// or cart payload clears everything. Read failures are returned.
func (m *Manager) Restore(ctx context.Context) error {
	m.mu.Lock()
	prev := m.state
	err := m.restoreLocked(ctx)
	next := m.state
	n := m.notifier
	m.mu.Unlock()

	m.notify(ctx, n, prev, next)
	return err
}

func (m *Manager) restoreLocked(ctx context.Context) error {
	m.state = State{}
	m.cart.Reset()

	token, hasToken, err := m.store.Get(ctx, storage.KeyToken)
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	raw, hasUser, err := m.store.Get(ctx, storage.KeyUser)
	if err != nil {
		return fmt.Errorf("read user: %w", err)
	}
	if !hasToken || !hasUser {
		return nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		m.log.Warn("persisted user is corrupt, clearing session", zap.Error(err))
		return m.clearLocked(ctx)
	}
	state, err := NewAuthenticated(token, user)
	if err != nil {
		m.log.Warn("persisted session is incomplete, clearing session", zap.Error(err))
		return m.clearLocked(ctx)
	}

	if err := m.cart.Restore(ctx); err != nil {
		if errors.Is(err, cart.ErrCorruptCart) {
			m.log.Warn("persisted cart is corrupt, clearing session", zap.Error(err))
			return m.clearLocked(ctx)
		}
		return err
	}
	m.state = state
	return nil
}

// Clear makes the session anonymous, empties the cart and removes the token,
// user and cart keys. Calling it again is harmless.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	prev := m.state
	err := m.clearLocked(ctx)
	next := m.state
	n := m.notifier
	m.mu.Unlock()

	m.notify(ctx, n, prev, next)
	return err
}

func (m *Manager) clearLocked(ctx context.Context) error {
	m.state = State{}
	m.cart.Reset()

	var errs []error
	for _, key := range []string{storage.KeyToken, storage.KeyUser, storage.KeyCart} {
		if err := m.store.Remove(ctx, key); err != nil {
			m.log.Error("failed to remove persisted key", zap.String("key", key), zap.Error(err))
			errs = append(errs, fmt.Errorf("remove %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

func (m *Manager) notify(ctx context.Context, n Notifier, prev, next State) {
	if n != nil {
		n.SessionChanged(ctx, prev, next)
	}
}
