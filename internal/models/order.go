package models

import (
	"encoding/json"
	"strings"
	"time"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	// StatusPending means the order was placed and not yet processed.
	StatusPending OrderStatus = "pending"
	// StatusProcessing means the order is being prepared.
	StatusProcessing OrderStatus = "processing"
	// StatusShipped means the order has left the warehouse.
	StatusShipped OrderStatus = "shipped"
	// StatusDelivered means the order reached the customer.
	StatusDelivered OrderStatus = "delivered"
	// StatusCancelled means the order was cancelled.
	StatusCancelled OrderStatus = "cancelled"
)

// ParseOrderStatus normalizes a wire status value. Older server versions
// used "Placed" for freshly created orders; that maps to StatusPending.
// Unknown values also fall back to StatusPending.
func ParseOrderStatus(s string) OrderStatus {
	switch strings.ToLower(s) {
	case "processing":
		return StatusProcessing
	case "shipped":
		return StatusShipped
	case "delivered":
		return StatusDelivered
	case "cancelled":
		return StatusCancelled
	default:
		return StatusPending
	}
}

// OrderItem is one purchased line inside an order.
type OrderItem struct {
	// Product is the purchased product's identifier.
	Product string `json:"product"`
	// Name is the product name captured at checkout.
	Name string `json:"name,omitempty"`
	// Quantity is the number of units purchased.
	Quantity int `json:"quantity"`
	// Price is the unit price captured at checkout.
	Price float64 `json:"price"`
}

// UnmarshalJSON reconciles "product" vs "product_id" and
// "price" vs "unit_price".
func (i *OrderItem) UnmarshalJSON(data []byte) error {
	var w struct {
		Product   string   `json:"product"`
		ProductID string   `json:"product_id"`
		Name      string   `json:"name"`
		Quantity  int      `json:"quantity"`
		Price     *float64 `json:"price"`
		UnitPrice *float64 `json:"unit_price"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	i.Product = firstNonEmpty(w.Product, w.ProductID)
	i.Name = w.Name
	i.Quantity = w.Quantity
	if w.Price != nil {
		i.Price = *w.Price
	} else if w.UnitPrice != nil {
		i.Price = *w.UnitPrice
	}
	return nil
}

// Order is a past purchase. Orders are immutable on the client once
// created; the only write path is checkout.
type Order struct {
	// ID is the unique identifier for the order.
	ID string `json:"id"`
	// User references the owning user.
	User string `json:"user,omitempty"`
	// Items are the purchased lines.
	Items []OrderItem `json:"items"`
	// TotalAmount is the order total as computed by the server.
	TotalAmount float64 `json:"totalAmount"`
	// Status is the normalized order lifecycle state.
	Status OrderStatus `json:"status"`
	// ShippingAddress is where the order ships to.
	ShippingAddress string `json:"shippingAddress,omitempty"`
	// CreatedAt is when the order was placed.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is when the order last changed.
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// UnmarshalJSON reconciles the order field names used across server
// versions, preferring the canonical name and falling back to the known
// alternate ("totalAmount"/"total_amount", "createdAt"/"created_at" and
// so on). A creation timestamp is defaulted to the current time only
// when both spellings are absent.
func (o *Order) UnmarshalJSON(data []byte) error {
	var w struct {
		ID                 string      `json:"id"`
		AltID              string      `json:"_id"`
		User               string      `json:"user"`
		UserID             string      `json:"user_id"`
		Items              []OrderItem `json:"items"`
		TotalAmount        *float64    `json:"totalAmount"`
		TotalAmountAlt     *float64    `json:"total_amount"`
		Status             string      `json:"status"`
		ShippingAddress    string      `json:"shippingAddress"`
		ShippingAddressAlt string      `json:"shipping_address"`
		CreatedAt          *string     `json:"createdAt"`
		CreatedAtAlt       *string     `json:"created_at"`
		UpdatedAt          string      `json:"updatedAt"`
		UpdatedAtAlt       string      `json:"updated_at"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	o.ID = firstNonEmpty(w.ID, w.AltID)
	o.User = firstNonEmpty(w.User, w.UserID)
	o.Items = w.Items
	if w.TotalAmount != nil {
		o.TotalAmount = *w.TotalAmount
	} else if w.TotalAmountAlt != nil {
		o.TotalAmount = *w.TotalAmountAlt
	}
	o.Status = ParseOrderStatus(w.Status)
	o.ShippingAddress = firstNonEmpty(w.ShippingAddress, w.ShippingAddressAlt)

	switch {
	case w.CreatedAt != nil:
		o.CreatedAt = parseTimestamp(*w.CreatedAt)
	case w.CreatedAtAlt != nil:
		o.CreatedAt = parseTimestamp(*w.CreatedAtAlt)
	default:
		o.CreatedAt = time.Now().UTC()
	}
	o.UpdatedAt = parseTimestamp(firstNonEmpty(w.UpdatedAt, w.UpdatedAtAlt))
	return nil
}
