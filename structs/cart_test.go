package structs

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddItemMergesMatchingLines(t *testing.T) {
	productID := uuid.New()
	cart := &Cart{Token: "test"}

	cart.AddItem(CartItem{ProductID: productID, Price: 2500, Quantity: 1, Size: "M", Color: "noir"})
	cart.AddItem(CartItem{ProductID: productID, Price: 2500, Quantity: 2, Size: "M", Color: "noir"})

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestCartAddItemKeepsDistinctVariantsApart(t *testing.T) {
	productID := uuid.New()
	cart := &Cart{Token: "test"}

	cart.AddItem(CartItem{ProductID: productID, Quantity: 1, Size: "M", Color: "noir"})
	cart.AddItem(CartItem{ProductID: productID, Quantity: 1, Size: "L", Color: "noir"})
	cart.AddItem(CartItem{ProductID: productID, Quantity: 1, Size: "M", Color: "blanc"})

	assert.Len(t, cart.Items, 3)
}

func TestCartAddItemClampsQuantityToOne(t *testing.T) {
	cart := &Cart{Token: "test"}
	cart.AddItem(CartItem{ProductID: uuid.New(), Quantity: 0, Size: "M"})

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCartUpdateQuantity(t *testing.T) {
	productID := uuid.New()
	cart := &Cart{Token: "test"}
	cart.AddItem(CartItem{ProductID: productID, Quantity: 1, Size: "M", Color: "noir"})

	ok := cart.UpdateQuantity(productID, "M", "noir", 5)
	require.True(t, ok)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	// Below one clamps to one
	ok = cart.UpdateQuantity(productID, "M", "noir", 0)
	require.True(t, ok)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	// Unknown line reports false
	ok = cart.UpdateQuantity(productID, "XL", "noir", 2)
	assert.False(t, ok)
}

func TestCartRemoveItem(t *testing.T) {
	productID := uuid.New()
	cart := &Cart{Token: "test"}
	cart.AddItem(CartItem{ProductID: productID, Quantity: 1, Size: "M", Color: "noir"})
	cart.AddItem(CartItem{ProductID: productID, Quantity: 1, Size: "L", Color: "noir"})

	cart.RemoveItem(productID, "M", "noir")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "L", cart.Items[0].Size)

	// Removing a missing line is a no-op
	cart.RemoveItem(productID, "M", "noir")
	assert.Len(t, cart.Items, 1)
}

func TestCartTotals(t *testing.T) {
	cart := &Cart{Token: "test"}
	cart.AddItem(CartItem{ProductID: uuid.New(), Price: 2500, Quantity: 2, Size: "M"})
	cart.AddItem(CartItem{ProductID: uuid.New(), Price: 4000, Quantity: 1, Size: "L"})

	assert.Equal(t, 3, cart.TotalItems())
	assert.Equal(t, int64(9000), cart.TotalPrice())

	cart.Clear()
	assert.Equal(t, 0, cart.TotalItems())
	assert.Equal(t, int64(0), cart.TotalPrice())
	assert.Empty(t, cart.Items)
}

func TestCartClone(t *testing.T) {
	productID := uuid.New()
	cart := &Cart{Token: "test"}
	cart.AddItem(CartItem{ProductID: productID, Price: 2500, Quantity: 2, Size: "M", Color: "noir"})

	clone := cart.Clone()
	require.Equal(t, cart.Items, clone.Items)

	// Mutating the clone must not touch the original
	clone.AddItem(CartItem{ProductID: productID, Quantity: 3, Size: "M", Color: "noir"})
	clone.AddItem(CartItem{ProductID: uuid.New(), Quantity: 1, Size: "L", Color: "rouge"})

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 6, clone.TotalItems())
}
