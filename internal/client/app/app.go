// Package app wires the client components into one container per process.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/FotoShop/internal/client/auth"
	"github.com/atinyakov/FotoShop/internal/client/cart"
	"github.com/atinyakov/FotoShop/internal/client/catalog"
	"github.com/atinyakov/FotoShop/internal/client/config"
	"github.com/atinyakov/FotoShop/internal/client/orders"
	"github.com/atinyakov/FotoShop/internal/client/session"
	"github.com/atinyakov/FotoShop/internal/client/storage"
	"github.com/atinyakov/FotoShop/internal/client/transport"
	"github.com/atinyakov/FotoShop/internal/client/view"
)

// ErrLoginRequired is returned by cart actions on an anonymous session.
var ErrLoginRequired = errors.New("log in to use the cart")

const connectivityMessage = "Cannot reach the storefront. Check your connection and try again."

// Options configures New.
type Options struct {
	Config config.Options
	// Interactive makes the view repopulate catalog and cart on login.
	Interactive bool
	// HTTPClient overrides the client built from Config.
	HTTPClient *http.Client
}

// App is the client's state container.
type App struct {
	Store   storage.Store
	Cart    *cart.Cart
	Session *session.Manager
	Auth    *auth.Client
	Catalog *catalog.Client
	Orders  *orders.Client
	View    *view.Controller

	log *zap.Logger
}

// New builds the container and restores the persisted session.
func New(ctx context.Context, opts Options, out io.Writer, log *zap.Logger) (*App, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		var err error
		httpClient, err = transport.NewHTTPClient(opts.Config.CAFile, opts.Config.Timeout)
		if err != nil {
			return nil, err
		}
	}

	store, err := storage.Open(opts.Config.Backend, opts.Config.StorePath, log)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	a := &App{Store: store, log: log}
	a.Cart = cart.New(store, log)
	a.Catalog = catalog.New(httpClient, opts.Config.ServerURL)
	a.View = view.New(out, a.Catalog, a.Cart, log)
	a.View.Populate = opts.Interactive
	a.Session = session.New(store, a.Cart, a.View, log)
	a.Auth = auth.New(httpClient, opts.Config.ServerURL, a.Session, log)
	a.Orders = orders.New(httpClient, opts.Config.ServerURL, a.Session, a.Cart, log)

	if err := a.Session.Restore(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("restore session: %w", err)
	}
	return a, nil
}

// Close releases the local store. The session is left persisted.
func (a *App) Close() error {
	return a.Store.Close()
}

// Report shows err to the user: service messages verbatim, connectivity
// failures as a generic line.
func (a *App) Report(err error) {
	if err == nil {
		return
	}
	var apiErr *transport.APIError
	switch {
	case errors.As(err, &apiErr):
		a.View.Alert(apiErr.Message)
	case errors.Is(err, transport.ErrConnectivity):
		a.log.Debug("service unreachable", zap.Error(err))
		a.View.Alert(connectivityMessage)
	default:
		a.View.Alert(err.Error())
	}
}

func (a *App) Login(ctx context.Context, email, password string) error {
	_, err := a.Auth.Login(ctx, email, password)
	a.Report(err)
	return err
}

func (a *App) Register(ctx context.Context, name, email, password string) error {
	_, err := a.Auth.Register(ctx, name, email, password)
	a.Report(err)
	return err
}

func (a *App) Logout(ctx context.Context) error {
	err := a.Session.Clear(ctx)
	a.Report(err)
	return err
}

// AddToCart looks id up in the catalog and adds quantity units.
func (a *App) AddToCart(ctx context.Context, id int64, quantity int) error {
	err := a.addToCart(ctx, id, quantity)
	a.Report(err)
	return err
}

func (a *App) addToCart(ctx context.Context, id int64, quantity int) error {
	if !a.Session.State().IsAuthenticated() {
		return ErrLoginRequired
	}
	img, err := a.Catalog.Find(ctx, id)
	if err != nil {
		return err
	}
	if err := a.Cart.Add(ctx, cart.Item{ID: img.ID, Name: img.Title, UnitPrice: img.Price}, quantity); err != nil {
		return err
	}
	a.View.Notice(fmt.Sprintf("Added %d × %s", quantity, img.Title))
	return nil
}

func (a *App) RemoveFromCart(ctx context.Context, id int64) error {
	var err error
	if !a.Session.State().IsAuthenticated() {
		err = ErrLoginRequired
	} else {
		err = a.Cart.Remove(ctx, id)
	}
	a.Report(err)
	return err
}

func (a *App) ClearCart(ctx context.Context) error {
	var err error
	if !a.Session.State().IsAuthenticated() {
		err = ErrLoginRequired
	} else {
		err = a.Cart.Clear(ctx)
	}
	a.Report(err)
	return err
}

func (a *App) Checkout(ctx context.Context) error {
	order, err := a.Orders.Checkout(ctx)
	if err != nil {
		a.Report(err)
		return err
	}
	a.View.RenderOrder(order)
	return nil
}

// WhoAmI renders the current session region.
func (a *App) WhoAmI(ctx context.Context) {
	s := a.Session.State()
	a.View.SessionChanged(ctx, s, s)
}
