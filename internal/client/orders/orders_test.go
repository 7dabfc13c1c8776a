package orders

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atinyakov/FotoShop/internal/client/cart"
	"github.com/atinyakov/FotoShop/internal/client/session"
	"github.com/atinyakov/FotoShop/internal/client/storage"
	"github.com/atinyakov/FotoShop/internal/client/transport"
	"github.com/atinyakov/FotoShop/internal/models"
)

type fixture struct {
	client  *Client
	session *session.Manager
	cart    *cart.Cart
	store   storage.Store
}

func newFixture(t *testing.T, handler http.HandlerFunc) fixture {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := storage.NewMemoryStore()
	c := cart.New(store, zap.NewNop())
	sm := session.New(store, c, nil, zap.NewNop())
	return fixture{
		client:  New(srv.Client(), srv.URL, sm, c, zap.NewNop()),
		session: sm,
		cart:    c,
		store:   store,
	}
}

func TestCheckout_Preconditions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := f.client.Checkout(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	require.NoError(t, f.session.Save(ctx, "abc", models.User{ID: 1, Name: "Ana", Email: "a@x.com"}))
	_, err = f.client.Checkout(ctx)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckout_Success(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))

		var req placeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []models.OrderLineInput{{ItemID: 1, Quantity: 2}, {ItemID: 4, Quantity: 1}}, req.Lines)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"message":"order placed","data":{"id":9,"customerId":1,"total":25,"status":"pending","lines":[]}}`))
	})

	require.NoError(t, f.session.Save(ctx, "abc", models.User{ID: 1, Name: "Ana", Email: "a@x.com"}))
	require.NoError(t, f.cart.Add(ctx, cart.Item{ID: 1, Name: "X", UnitPrice: 10}, 2))
	require.NoError(t, f.cart.Add(ctx, cart.Item{ID: 4, Name: "Y", UnitPrice: 5}, 1))

	order, err := f.client.Checkout(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(9), order.ID)
	assert.Equal(t, models.OrderStatusPending, order.Status)

	assert.Zero(t, f.cart.Len())
	_, ok, _ := f.store.Get(ctx, storage.KeyCart)
	assert.False(t, ok)
	assert.True(t, f.session.State().IsAuthenticated())
}

func TestCheckout_RejectedKeepsCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"image 1 is out of stock"}`))
	})

	require.NoError(t, f.session.Save(ctx, "abc", models.User{ID: 1, Name: "Ana", Email: "a@x.com"}))
	require.NoError(t, f.cart.Add(ctx, cart.Item{ID: 1, Name: "X", UnitPrice: 10}, 2))

	_, err := f.client.Checkout(ctx)
	var apiErr *transport.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "image 1 is out of stock", apiErr.Message)
	assert.Equal(t, 1, f.cart.Len())
}
