package tables

import (
	"ouardatie_server/structs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func variantProduct() *Product {
	return &Product{
		Name:           "Robe Kabyle",
		Price:          4500,
		AvailableSizes: []string{"M", "L"},
		Colors: structs.ColorList{
			{Name: "noir", Hex: "#000"},
			{Name: "rouge", Hex: "#f00"},
		},
		StockVariants: structs.StockVariantList{
			{Color: "noir", ColorHex: "#000", Size: "M", Quantity: 0},
			{Color: "noir", ColorHex: "#000", Size: "L", Quantity: 3},
			{Color: "rouge", ColorHex: "#f00", Size: "M", Quantity: 7},
		},
	}
}

func TestEffectivePrice(t *testing.T) {
	promo := int64(2900)

	p := &Product{Price: 4500}
	assert.Equal(t, int64(4500), p.EffectivePrice())

	p.PromotionPrice = &promo
	assert.Equal(t, int64(4500), p.EffectivePrice(), "promotion price without flag is ignored")

	p.IsOnPromotion = true
	assert.Equal(t, int64(2900), p.EffectivePrice())

	p.PromotionPrice = nil
	assert.Equal(t, int64(4500), p.EffectivePrice(), "flag without price falls back to regular")
}

func TestVariantStock(t *testing.T) {
	p := variantProduct()

	assert.Equal(t, 3, p.VariantStock("#000", "L"))
	assert.Equal(t, 0, p.VariantStock("#000", "M"))
	assert.Equal(t, 0, p.VariantStock("#0ff", "M"), "unknown variant is zero")
}

func TestIsColorAndSizeAvailable(t *testing.T) {
	p := variantProduct()

	assert.True(t, p.IsColorAvailable("#000"), "color with any stocked size")
	assert.True(t, p.IsColorAvailable("#f00"))
	assert.False(t, p.IsColorAvailable("#0ff"))

	assert.False(t, p.IsSizeAvailable("M", "#000"), "exact pair out of stock")
	assert.True(t, p.IsSizeAvailable("M", "#f00"))
	assert.True(t, p.IsSizeAvailable("M", ""), "any color counts without a hex")

	// Variant-less products are unconstrained
	flat := &Product{StockQuantity: 10}
	assert.True(t, flat.IsColorAvailable("#000"))
	assert.True(t, flat.IsSizeAvailable("XXL", ""))
}

func TestIsOutOfStock(t *testing.T) {
	p := variantProduct()
	assert.False(t, p.IsOutOfStock())

	for i := range p.StockVariants {
		p.StockVariants[i].Quantity = 0
	}
	assert.True(t, p.IsOutOfStock())

	flat := &Product{StockQuantity: 0}
	assert.True(t, flat.IsOutOfStock())

	flagged := &Product{StockQuantity: 5, StockStatus: StockStatusOutOfStock}
	assert.True(t, flagged.IsOutOfStock(), "stored flag wins for variant-less products")
}

func TestResolveStockStatus(t *testing.T) {
	tests := []struct {
		name string
		p    *Product
		want StockStatus
	}{
		{"flat zero", &Product{StockQuantity: 0}, StockStatusOutOfStock},
		{"flat low", &Product{StockQuantity: 5}, StockStatusLowStock},
		{"flat available", &Product{StockQuantity: 6}, StockStatusAvailable},
		{"variants sum to available", variantProduct(), StockStatusAvailable},
		{
			"variants sum low",
			&Product{
				StockQuantity: 50, // ignored when variants exist
				StockVariants: structs.StockVariantList{
					{ColorHex: "#000", Size: "M", Quantity: 2},
					{ColorHex: "#000", Size: "L", Quantity: 1},
				},
			},
			StockStatusLowStock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.ResolveStockStatus())
		})
	}
}

func TestClampQuantity(t *testing.T) {
	p := variantProduct()

	assert.Equal(t, 3, p.ClampQuantity("#000", "L", 10), "clamped to variant stock")
	assert.Equal(t, 2, p.ClampQuantity("#000", "L", 2))
	assert.Equal(t, 1, p.ClampQuantity("#000", "L", 0), "never under one")
	assert.Equal(t, 1, p.ClampQuantity("#000", "M", 4), "zero-stock variant still yields one")

	flat := &Product{StockQuantity: 2}
	assert.Equal(t, 2, flat.ClampQuantity("", "", 9))
}

func TestDefaultSelectionPrefersStockedVariant(t *testing.T) {
	p := variantProduct()

	sel := p.DefaultSelection()
	assert.Equal(t, "#000", sel.ColorHex)
	assert.Equal(t, "L", sel.Size, "skips the out-of-stock (noir, M) pair")
	assert.Equal(t, 1, sel.Quantity)
}

func TestDefaultSelectionFallsBackWhenNothingStocked(t *testing.T) {
	p := variantProduct()
	for i := range p.StockVariants {
		p.StockVariants[i].Quantity = 0
	}

	sel := p.DefaultSelection()
	assert.Equal(t, "#000", sel.ColorHex, "first listed color")
	assert.Equal(t, "M", sel.Size, "first listed size")
}

func TestSelectionResetsQuantityOnVariantChange(t *testing.T) {
	p := variantProduct()
	sel := p.DefaultSelection()

	sel.SetQuantity(3)
	assert.Equal(t, 3, sel.Quantity)

	sel.SelectColor("#f00")
	assert.Equal(t, 1, sel.Quantity, "color switch resets quantity")

	sel.SelectSize("M")
	assert.Equal(t, 1, sel.Quantity)

	sel.SetQuantity(100)
	assert.Equal(t, 7, sel.Quantity, "clamped to the new variant's stock")
}
