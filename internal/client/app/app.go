// Package app wires the API client, durable storage and state
// containers into one explicitly constructed application object, so the
// whole state layer stays testable in isolation.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cortexcart/storefront/internal/client/api"
	"github.com/cortexcart/storefront/internal/client/state"
	"github.com/cortexcart/storefront/internal/client/storage"
	"github.com/cortexcart/storefront/internal/config"
)

// App bundles the client-side state layer.
type App struct {
	API      *api.Client
	Store    *storage.Storage
	Session  *state.Session
	Cart     *state.Cart
	Products *state.Products
	Orders   *state.Orders
	UI       *state.UI
	Guard    *state.Guard
}

// New constructs and wires the state layer from configuration: storage
// is opened, every container is created, the global 401 handler is
// installed and persisted state is hydrated before New returns.
func New(opts *config.Options, log *zap.Logger) (*App, error) {
	store, err := storage.New(opts.StateDir)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	client := api.New(opts.BaseURL, store, log, api.WithTimeout(opts.RequestTimeout))

	a := &App{
		API:      client,
		Store:    store,
		Session:  state.NewSession(client, store, log),
		Cart:     state.NewCart(store, log),
		Products: state.NewProducts(client, log),
		Orders:   state.NewOrders(client, log),
		UI:       state.NewUI(),
	}
	a.Guard = state.NewGuard(a.Session)

	// Authentication expiry anywhere clears the session and asks the
	// navigation layer for the login view. The session's own expiry
	// check in FetchCurrentUser goes through the same path.
	client.SetUnauthorizedHandler(func() {
		a.Session.HandleUnauthorized()
		a.UI.RequestLoginRedirect()
	})

	a.Session.Hydrate()
	a.Cart.Hydrate()
	return a, nil
}

// Checkout places an order for the current cart contents. The cart is
// cleared only after the server confirms the order; a rejected checkout
// leaves every line in place.
func (a *App) Checkout(ctx context.Context, shippingAddress string) (string, error) {
	items := a.Cart.Items()
	if len(items) == 0 {
		return "", fmt.Errorf("cart is empty")
	}

	orderID, err := a.Orders.CreateOrder(ctx, items, a.Cart.TotalPrice(), shippingAddress)
	if err != nil {
		return "", err
	}

	a.Cart.Clear()
	return orderID, nil
}
