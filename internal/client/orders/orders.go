// Package orders places the current cart as an order with the server.
package orders

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/FotoShop/internal/client/cart"
	"github.com/atinyakov/FotoShop/internal/client/session"
	"github.com/atinyakov/FotoShop/internal/client/transport"
	"github.com/atinyakov/FotoShop/internal/models"
)

const pathOrders = "/orders"

var (
	ErrNotAuthenticated = errors.New("log in to check out")
	ErrEmptyCart        = errors.New("cart is empty")
)

type placeRequest struct {
	Lines []models.OrderLineInput `json:"lines"`
}

type Client struct {
	http    *http.Client
	baseURL string
	session *session.Manager
	cart    *cart.Cart
	log     *zap.Logger
}

func New(httpClient *http.Client, baseURL string, sm *session.Manager, c *cart.Cart, log *zap.Logger) *Client {
	return &Client{http: httpClient, baseURL: baseURL, session: sm, cart: c, log: log}
}

// Checkout submits the cart. On success the cart is cleared; a failure to
// clear is logged and does not fail the checkout.
func (c *Client) Checkout(ctx context.Context) (models.Order, error) {
	token, _, ok := c.session.State().Identity()
	if !ok {
		return models.Order{}, ErrNotAuthenticated
	}
	lines := c.cart.Lines()
	if len(lines) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	req := placeRequest{Lines: make([]models.OrderLineInput, 0, len(lines))}
	for _, l := range lines {
		req.Lines = append(req.Lines, models.OrderLineInput{ItemID: l.ItemID, Quantity: l.Quantity})
	}

	var env models.Envelope[models.Order]
	err := transport.Do(ctx, c.http, transport.Request{
		Method:   http.MethodPost,
		URL:      transport.Endpoint(c.baseURL, pathOrders),
		Body:     req,
		Token:    token,
		Fallback: "checkout failed",
	}, &env)
	if err != nil {
		return models.Order{}, fmt.Errorf("place order: %w", err)
	}

	if err := c.cart.Clear(ctx); err != nil {
		c.log.Warn("order placed but cart could not be cleared", zap.Int64("order_id", env.Data.ID), zap.Error(err))
	}
	return env.Data, nil
}
