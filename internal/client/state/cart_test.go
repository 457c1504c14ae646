package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cortexcart/storefront/internal/client/state"
	"github.com/cortexcart/storefront/internal/client/storage"
	"github.com/cortexcart/storefront/internal/models"
)

const (
	productID  = "64f0000000000000000000aa"
	productID2 = "64f0000000000000000000ab"
)

func newTestCart(t *testing.T) (*state.Cart, *storage.Storage) {
	t.Helper()
	store, err := storage.New(t.TempDir())
	require.NoError(t, err)
	cart := state.NewCart(store, zap.NewNop())
	cart.Hydrate()
	return cart, store
}

func TestCart_AddItemMergesByProduct(t *testing.T) {
	cart, _ := newTestCart(t)
	p := models.Product{ID: productID, Name: "Mug", Price: 249}

	cart.AddItem(p, 2)
	cart.AddItem(p, 3)

	items := cart.Items()
	require.Len(t, items, 1, "adding the same product twice must not duplicate the line")
	assert.Equal(t, 5, items[0].Quantity)
}

func TestCart_AddItemNonPositiveIsNoop(t *testing.T) {
	cart, _ := newTestCart(t)
	p := models.Product{ID: productID, Price: 100}

	cart.AddItem(p, 0)
	cart.AddItem(p, -2)

	assert.Empty(t, cart.Items())
}

func TestCart_UpdateQuantitySetsExactValue(t *testing.T) {
	cart, _ := newTestCart(t)
	cart.AddItem(models.Product{ID: productID, Price: 100}, 2)

	cart.UpdateQuantity(productID, 7)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestCart_UpdateQuantityZeroOrNegativeRemoves(t *testing.T) {
	cart, _ := newTestCart(t)
	cart.AddItem(models.Product{ID: productID, Price: 100}, 2)
	cart.UpdateQuantity(productID, 0)
	assert.Empty(t, cart.Items(), "quantity 0 removes the line")

	cart.AddItem(models.Product{ID: productID, Price: 100}, 2)
	cart.UpdateQuantity(productID, -1)
	assert.Empty(t, cart.Items(), "negative quantity removes the line")
}

func TestCart_RemoveItemMissingIsNoop(t *testing.T) {
	cart, _ := newTestCart(t)
	cart.AddItem(models.Product{ID: productID, Price: 100}, 1)

	cart.RemoveItem(productID2)

	assert.Len(t, cart.Items(), 1)
}

func TestCart_Totals(t *testing.T) {
	cart, _ := newTestCart(t)
	cart.AddItem(models.Product{ID: productID, Price: 100}, 2)
	cart.AddItem(models.Product{ID: productID2, Price: 50}, 1)

	assert.Equal(t, 3, cart.TotalItems())
	assert.Equal(t, 250.0, cart.TotalPrice())
}

func TestCart_Clear(t *testing.T) {
	cart, store := newTestCart(t)
	cart.AddItem(models.Product{ID: productID, Price: 100}, 2)

	cart.Clear()

	assert.Empty(t, cart.Items())
	persisted, err := store.LoadCart()
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestCart_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.New(dir)
	require.NoError(t, err)

	cart := state.NewCart(store, zap.NewNop())
	cart.Hydrate()
	cart.AddItem(models.Product{ID: productID, Name: "Mug", Price: 249}, 2)

	store2, err := storage.New(dir)
	require.NoError(t, err)
	cart2 := state.NewCart(store2, zap.NewNop())
	cart2.Hydrate()

	items := cart2.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Mug", items[0].Product.Name)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCart_HydrateDropsWholeCartOnMalformedID(t *testing.T) {
	store, err := storage.New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.SaveCart([]models.CartItem{
		{Product: models.Product{ID: productID, Price: 100}, Quantity: 1},
		{Product: models.Product{ID: "not-an-object-id", Price: 50}, Quantity: 2},
	}))

	cart := state.NewCart(store, zap.NewNop())
	cart.Hydrate()

	assert.Empty(t, cart.Items(), "one malformed id clears the whole cart, not just the bad line")

	persisted, err := store.LoadCart()
	require.NoError(t, err)
	assert.Empty(t, persisted, "the cleared cart is persisted too")
}

func TestCart_HydrateKeepsValidCart(t *testing.T) {
	store, err := storage.New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.SaveCart([]models.CartItem{
		{Product: models.Product{ID: productID, Price: 100}, Quantity: 1},
	}))

	cart := state.NewCart(store, zap.NewNop())
	cart.Hydrate()

	assert.Len(t, cart.Items(), 1)
}
