package services

import (
	"testing"

	"ouardatie_server/structs"
	"ouardatie_server/structs/tables"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func shippingFixtures() []tables.ShippingOption {
	return []tables.ShippingOption{
		{Wilaya: "Alger", DeskPrice: 250, HomePrice: 400},
		{Wilaya: "Béjaïa", DeskPrice: 300, HomePrice: 550},
		{Wilaya: "Oran", DeskPrice: 350, HomePrice: 500},
	}
}

func TestResolveShippingCost(t *testing.T) {
	options := shippingFixtures()

	tests := []struct {
		name         string
		wilaya       string
		shippingType tables.ShippingType
		wantCost     int64
		wantFound    bool
	}{
		{"home delivery", "Alger", tables.ShippingTypeHome, 400, true},
		{"desk pickup", "Alger", tables.ShippingTypeDesk, 250, true},
		{"case insensitive", "alger", tables.ShippingTypeHome, 400, true},
		{"accent folded", "bejaia", tables.ShippingTypeDesk, 300, true},
		{"unknown wilaya", "Tamanrasset", tables.ShippingTypeHome, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cost, found := resolveShippingCost(options, tt.wilaya, tt.shippingType)
			assert.Equal(t, tt.wantCost, cost)
			assert.Equal(t, tt.wantFound, found)
		})
	}
}

func TestResolveShippingCostNoOptions(t *testing.T) {
	cost, found := resolveShippingCost(nil, "Alger", tables.ShippingTypeHome)
	assert.Zero(t, cost)
	assert.False(t, found)
}

func TestBuildQuote(t *testing.T) {
	cart := &structs.Cart{
		Token: "quote-test",
		Items: []structs.CartItem{
			{ProductID: uuid.New(), Price: 1500, Quantity: 2},
			{ProductID: uuid.New(), Price: 2000, Quantity: 1},
		},
	}

	quote := buildQuote(cart, 400, true)
	assert.Equal(t, int64(5000), quote.Subtotal)
	assert.Equal(t, int64(400), quote.ShippingCost)
	assert.Equal(t, int64(5400), quote.Total)
	assert.True(t, quote.ShippingFound)
}

// A destination without a shipping option still quotes; the shipping
// line is zero and the storefront tells the customer the cost is
// confirmed by phone.
func TestBuildQuoteUnknownDestination(t *testing.T) {
	cart := &structs.Cart{
		Token: "quote-test",
		Items: []structs.CartItem{
			{ProductID: uuid.New(), Price: 3200, Quantity: 1},
		},
	}

	quote := buildQuote(cart, 0, false)
	assert.Equal(t, int64(3200), quote.Subtotal)
	assert.Zero(t, quote.ShippingCost)
	assert.Equal(t, quote.Subtotal, quote.Total)
	assert.False(t, quote.ShippingFound)
}

func TestBuildQuoteEmptyCart(t *testing.T) {
	cart := &structs.Cart{Token: "quote-test"}

	quote := buildQuote(cart, 400, true)
	assert.Zero(t, quote.Subtotal)
	assert.Equal(t, int64(400), quote.Total)
}
