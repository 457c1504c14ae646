package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cortexcart/storefront/internal/middleware"
	"github.com/cortexcart/storefront/internal/server/store"
)

// OrdersHandler handles order listing and checkout.
type OrdersHandler struct {
	// Store is the order data layer.
	Store *store.Memory
}

// MyOrders returns the caller's orders.
func (h *OrdersHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	orders := h.Store.OrdersByUser(userID)
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	writeJSON(w, http.StatusOK, out)
}

// AllOrders returns every order in the system. Admin only; the router
// applies the admin gate.
func (h *OrdersHandler) AllOrders(w http.ResponseWriter, r *http.Request) {
	orders := h.Store.Orders()
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	writeJSON(w, http.StatusOK, out)
}

// CheckoutRequest is the JSON payload the client sends at checkout. The
// server recomputes the total from stored prices; the client's
// totalAmount is advisory.
type CheckoutRequest struct {
	Items []struct {
		Product  string  `json:"product"`
		Quantity int     `json:"quantity"`
		Price    float64 `json:"price"`
	} `json:"items"`
	TotalAmount     float64 `json:"totalAmount"`
	ShippingAddress string  `json:"shippingAddress"`
}

// Checkout validates stock, decrements it, records the order and
// returns the new order id.
func (h *OrdersHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	lines := make([]store.CheckoutLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, store.CheckoutLine{
			ProductID: item.Product,
			Quantity:  item.Quantity,
		})
	}

	userID := middleware.GetUserIDFromContext(r.Context())
	order, err := h.Store.PlaceOrder(userID, req.ShippingAddress, lines)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":      "Order placed successfully",
		"order_id":     order.ID,
		"total_amount": order.TotalAmount,
	})
}
