package view

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atinyakov/FotoShop/internal/client/cart"
	"github.com/atinyakov/FotoShop/internal/client/session"
	"github.com/atinyakov/FotoShop/internal/client/storage"
	"github.com/atinyakov/FotoShop/internal/models"
)

type stubCatalog struct {
	images []models.Image
	err    error
	calls  int
}

func (s *stubCatalog) List(context.Context) ([]models.Image, error) {
	s.calls++
	return s.images, s.err
}

func authenticated(t *testing.T) session.State {
	t.Helper()
	s, err := session.NewAuthenticated("abc", models.User{ID: 1, Name: "Ana", Email: "a@x.com"})
	require.NoError(t, err)
	return s
}

func TestSessionChanged_Authenticated(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer
	cat := &stubCatalog{images: []models.Image{{ID: 7, Title: "Dunes", Category: "nature", Price: 12.5, Stock: 3, Active: true}}}
	c := cart.New(storage.NewMemoryStore(), zap.NewNop())
	require.NoError(t, c.Add(ctx, cart.Item{ID: 7, Name: "Dunes", UnitPrice: 12.5}, 2))

	v := New(&out, cat, c, zap.NewNop())
	v.SessionChanged(ctx, session.State{}, authenticated(t))

	text := out.String()
	assert.Contains(t, text, "Ana")
	assert.Contains(t, text, "a@x.com")
	assert.Contains(t, text, "logout")
	assert.Contains(t, text, "Dunes")
	assert.Contains(t, text, "25.00")
	assert.Equal(t, 1, cat.calls)
}

func TestSessionChanged_NoRepopulateWhenAlreadyAuthenticated(t *testing.T) {
	var out bytes.Buffer
	cat := &stubCatalog{}
	v := New(&out, cat, cart.New(storage.NewMemoryStore(), zap.NewNop()), zap.NewNop())

	s := authenticated(t)
	v.SessionChanged(context.Background(), s, s)
	assert.Zero(t, cat.calls)
	assert.Contains(t, out.String(), "Ana")
}

func TestSessionChanged_PopulateDisabled(t *testing.T) {
	var out bytes.Buffer
	cat := &stubCatalog{}
	v := New(&out, cat, cart.New(storage.NewMemoryStore(), zap.NewNop()), zap.NewNop())
	v.Populate = false

	v.SessionChanged(context.Background(), session.State{}, authenticated(t))
	assert.Zero(t, cat.calls)
}

func TestSessionChanged_Anonymous(t *testing.T) {
	var out bytes.Buffer
	v := New(&out, &stubCatalog{}, cart.New(storage.NewMemoryStore(), zap.NewNop()), zap.NewNop())

	v.SessionChanged(context.Background(), authenticated(t), session.State{})
	text := out.String()
	assert.Contains(t, text, "Not logged in")
	assert.NotContains(t, text, "Ana")
	assert.NotContains(t, text, "logout")
}

func TestRenderCatalog_Failure(t *testing.T) {
	var out bytes.Buffer
	v := New(&out, &stubCatalog{err: errors.New("service unreachable")}, cart.New(storage.NewMemoryStore(), zap.NewNop()), zap.NewNop())

	err := v.RenderCatalog(context.Background())
	require.Error(t, err)
	assert.Contains(t, out.String(), "catalog unavailable: service unreachable")
}

func TestRenderCart_Empty(t *testing.T) {
	var out bytes.Buffer
	v := New(&out, &stubCatalog{}, cart.New(storage.NewMemoryStore(), zap.NewNop()), zap.NewNop())
	v.RenderCart()
	assert.Contains(t, out.String(), "Your cart is empty.")
}

func TestAlert(t *testing.T) {
	var out bytes.Buffer
	v := New(&out, &stubCatalog{}, cart.New(storage.NewMemoryStore(), zap.NewNop()), zap.NewNop())
	v.Alert("bad credentials")
	assert.Contains(t, out.String(), "bad credentials")
}
