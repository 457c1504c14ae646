package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	assert.Equal(t, StatusPending, ParseOrderStatus("pending"))
	assert.Equal(t, StatusPending, ParseOrderStatus("Placed"))
	assert.Equal(t, StatusProcessing, ParseOrderStatus("Processing"))
	assert.Equal(t, StatusShipped, ParseOrderStatus("shipped"))
	assert.Equal(t, StatusDelivered, ParseOrderStatus("delivered"))
	assert.Equal(t, StatusCancelled, ParseOrderStatus("cancelled"))
	assert.Equal(t, StatusPending, ParseOrderStatus(""))
}

func TestOrder_UnmarshalCanonicalNames(t *testing.T) {
	var o Order
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "64f0000000000000000000cc",
		"user": "64f000000000000000000001",
		"items": [{"product": "64f0000000000000000000aa", "quantity": 2, "price": 100}],
		"totalAmount": 200,
		"status": "pending",
		"shippingAddress": "1 Main St",
		"createdAt": "2026-01-02T03:04:05Z"
	}`), &o))
	assert.Equal(t, "64f0000000000000000000cc", o.ID)
	assert.Equal(t, 200.0, o.TotalAmount)
	assert.Equal(t, "1 Main St", o.ShippingAddress)
	assert.Equal(t, "64f0000000000000000000aa", o.Items[0].Product)
	assert.Equal(t, 100.0, o.Items[0].Price)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), o.CreatedAt.UTC())
}

func TestOrder_UnmarshalAlternateNames(t *testing.T) {
	var o Order
	require.NoError(t, json.Unmarshal([]byte(`{
		"_id": "64f0000000000000000000cd",
		"user_id": "64f000000000000000000001",
		"items": [{"product_id": "64f0000000000000000000aa", "quantity": 1, "unit_price": 50}],
		"total_amount": 50,
		"status": "Placed",
		"shipping_address": "2 Side St",
		"created_at": "2026-01-02T03:04:05.123456"
	}`), &o))
	assert.Equal(t, "64f0000000000000000000cd", o.ID)
	assert.Equal(t, "64f000000000000000000001", o.User)
	assert.Equal(t, 50.0, o.TotalAmount)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, "2 Side St", o.ShippingAddress)
	assert.Equal(t, "64f0000000000000000000aa", o.Items[0].Product)
	assert.Equal(t, 50.0, o.Items[0].Price)
	assert.False(t, o.CreatedAt.IsZero())
}

func TestOrder_UnmarshalPrefersCanonicalName(t *testing.T) {
	var o Order
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "64f0000000000000000000ce",
		"totalAmount": 75,
		"total_amount": 999
	}`), &o))
	assert.Equal(t, 75.0, o.TotalAmount)
}

func TestOrder_DefaultCreatedAtOnlyWhenBothAbsent(t *testing.T) {
	var o Order
	before := time.Now().UTC()
	require.NoError(t, json.Unmarshal([]byte(`{"id":"64f0000000000000000000cf"}`), &o))
	after := time.Now().UTC()

	assert.False(t, o.CreatedAt.Before(before))
	assert.False(t, o.CreatedAt.After(after))

	// A present (even alternate-named) timestamp is never replaced.
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "64f0000000000000000000cf",
		"created_at": "2026-01-02T03:04:05Z"
	}`), &o))
	assert.Equal(t, 2026, o.CreatedAt.Year())
}
