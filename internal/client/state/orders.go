package state

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/cortexcart/storefront/internal/client/api"
	"github.com/cortexcart/storefront/internal/models"
)

// ErrNoOrderID means checkout succeeded on the wire but no order
// identifier could be extracted from the response.
var ErrNoOrderID = errors.New("checkout response carried no order id")

// Orders is the read model for past orders and the write path for
// checkout.
type Orders struct {
	api *api.Client
	log *zap.Logger

	mu      sync.Mutex
	orders  []models.Order
	lastErr string
}

// NewOrders constructs an Orders container.
func NewOrders(client *api.Client, log *zap.Logger) *Orders {
	return &Orders{api: client, log: log}
}

// FetchOrders retrieves the caller's orders. Records are normalized
// through the model layer, which reconciles the field-name variants
// different server versions emit.
func (o *Orders) FetchOrders(ctx context.Context) error {
	return o.fetch(ctx, "/orders/my-orders")
}

// FetchAllOrders retrieves every order in the system. Admin only.
func (o *Orders) FetchAllOrders(ctx context.Context) error {
	return o.fetch(ctx, "/orders/all")
}

func (o *Orders) fetch(ctx context.Context, path string) error {
	o.clearErr()

	var orders []models.Order
	if err := o.api.Get(ctx, path, &orders); err != nil {
		o.setErr(api.Detail(err, "Failed to fetch orders"))
		return err
	}

	o.mu.Lock()
	o.orders = orders
	o.mu.Unlock()
	return nil
}

// CreateOrder submits a checkout request and returns the new order's
// identifier, wherever the response shape put it. On failure an error
// is recorded and returned; the caller must not clear the cart until
// this resolves successfully.
func (o *Orders) CreateOrder(ctx context.Context, items []models.CartItem, total float64, shippingAddress string) (string, error) {
	o.clearErr()

	type checkoutItem struct {
		Product  string  `json:"product"`
		Quantity int     `json:"quantity"`
		Price    float64 `json:"price"`
	}
	payload := struct {
		Items           []checkoutItem `json:"items"`
		TotalAmount     float64        `json:"totalAmount"`
		ShippingAddress string         `json:"shippingAddress"`
	}{
		Items:           make([]checkoutItem, 0, len(items)),
		TotalAmount:     total,
		ShippingAddress: shippingAddress,
	}
	for _, item := range items {
		payload.Items = append(payload.Items, checkoutItem{
			Product:  item.Product.ID,
			Quantity: item.Quantity,
			Price:    item.Product.Price,
		})
	}

	var resp struct {
		Order struct {
			ID    string `json:"id"`
			AltID string `json:"_id"`
		} `json:"order"`
		OrderID string `json:"order_id"`
	}
	if err := o.api.Post(ctx, "/orders/checkout", payload, &resp); err != nil {
		o.setErr(api.Detail(err, "Failed to create order"))
		return "", err
	}

	id := resp.Order.ID
	if id == "" {
		id = resp.Order.AltID
	}
	if id == "" {
		id = resp.OrderID
	}
	if id == "" {
		o.setErr("Failed to create order")
		return "", ErrNoOrderID
	}

	o.log.Info("order created", zap.String("order", id))
	return id, nil
}

// ClearError resets the error field.
func (o *Orders) ClearError() { o.clearErr() }

// Orders returns a copy of the cached order listing.
func (o *Orders) Orders() []models.Order {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]models.Order, len(o.orders))
	copy(out, o.orders)
	return out
}

// Err returns the last recorded error message, empty when none.
func (o *Orders) Err() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

func (o *Orders) setErr(msg string) {
	o.mu.Lock()
	o.lastErr = msg
	o.mu.Unlock()
}

func (o *Orders) clearErr() {
	o.mu.Lock()
	o.lastErr = ""
	o.mu.Unlock()
}
