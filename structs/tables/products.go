package tables

import (
	"ouardatie_server/structs"
	"time"

	"github.com/google/uuid"
)

// Stock status labels derived from quantities. The stored stock_status
// column is advisory; quantities always win (a product with zero stock
// is out of stock no matter what the flag says).
type StockStatus string

const (
	StockStatusOutOfStock StockStatus = "out_of_stock"
	StockStatusLowStock   StockStatus = "low_stock"
	StockStatusAvailable  StockStatus = "available"
)

// LowStockThreshold is the quantity at or under which a product is
// classified as low_stock.
const LowStockThreshold = 5

type Product struct {
	tableName      struct{}                 `bun:"table:products,alias:p"`
	ID             uuid.UUID                `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name           string                   `bun:"name,notnull" json:"name"`
	SKU            string                   `bun:"sku,notnull" json:"sku"`
	Description    string                   `bun:"description" json:"description"`
	Price          int64                    `bun:"price,notnull" json:"price"` // whole DZD
	CategoryID     *uuid.UUID               `bun:"category_id,type:uuid" json:"category_id,omitempty"`
	Images         []string                 `bun:"images,array" json:"images"`
	AvailableSizes []string                 `bun:"available_sizes,array" json:"available_sizes"`
	Colors         structs.ColorList        `bun:"colors,type:jsonb" json:"colors"`
	StockQuantity  int                      `bun:"stock_quantity,notnull" json:"stock_quantity"`
	StockStatus    StockStatus              `bun:"stock_status" json:"stock_status"`
	StockVariants  structs.StockVariantList `bun:"stock_variants,type:jsonb" json:"stock_variants"`
	IsFeatured     bool                     `bun:"is_featured,notnull,default:false" json:"is_featured"`
	IsOnPromotion  bool                     `bun:"is_on_promotion,notnull,default:false" json:"is_on_promotion"`
	PromotionPrice *int64                   `bun:"promotion_price" json:"promotion_price,omitempty"`
	CreatedAt      time.Time                `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt      time.Time                `bun:"updated_at,notnull,default:now()" json:"updated_at"`
}

type Category struct {
	tableName struct{}  `bun:"table:categories,alias:c"`
	ID        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name      string    `bun:"name,notnull,unique" json:"name"`
	CreatedAt time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
}

// EffectivePrice is the promotion price while a promotion is active,
// otherwise the regular price.
func (p *Product) EffectivePrice() int64 {
	if p.IsOnPromotion && p.PromotionPrice != nil {
		return *p.PromotionPrice
	}
	return p.Price
}

// IsColorAvailable reports whether any variant of the given color has
// stock. Products without variants are unconstrained: every color is
// available.
func (p *Product) IsColorAvailable(colorHex string) bool {
	if len(p.StockVariants) == 0 {
		return true
	}
	for _, v := range p.StockVariants {
		if v.ColorHex == colorHex && v.Quantity > 0 {
			return true
		}
	}
	return false
}

// IsSizeAvailable reports whether the size has stock. With a colorHex
// the exact (color, size) pair is checked; without one, any variant of
// that size with stock counts. Variant-less products are unconstrained.
func (p *Product) IsSizeAvailable(size, colorHex string) bool {
	if len(p.StockVariants) == 0 {
		return true
	}
	for _, v := range p.StockVariants {
		if v.Size != size {
			continue
		}
		if colorHex != "" && v.ColorHex != colorHex {
			continue
		}
		if v.Quantity > 0 {
			return true
		}
	}
	return false
}

// VariantStock returns the exact quantity for a (color, size) pair, or
// 0 when no such variant exists.
func (p *Product) VariantStock(colorHex, size string) int {
	for _, v := range p.StockVariants {
		if v.ColorHex == colorHex && v.Size == size {
			return v.Quantity
		}
	}
	return 0
}

// IsOutOfStock is true when nothing on the product can be ordered. For
// variant-less products the flat stock_quantity and stored status flag
// decide; for variant products only an all-zero variant list counts.
func (p *Product) IsOutOfStock() bool {
	if len(p.StockVariants) == 0 {
		return p.StockQuantity == 0 || p.StockStatus == StockStatusOutOfStock
	}
	for _, v := range p.StockVariants {
		if v.Quantity > 0 {
			return false
		}
	}
	return true
}

// ResolveStockStatus classifies the product from its quantities.
func (p *Product) ResolveStockStatus() StockStatus {
	total := p.StockQuantity
	if len(p.StockVariants) > 0 {
		total = 0
		for _, v := range p.StockVariants {
			total += v.Quantity
		}
	}
	switch {
	case total == 0:
		return StockStatusOutOfStock
	case total <= LowStockThreshold:
		return StockStatusLowStock
	default:
		return StockStatusAvailable
	}
}

// ClampQuantity bounds a requested quantity to the remaining stock of
// the (color, size) variant, never dropping under 1. For variant-less
// products the flat stock_quantity bounds the request.
func (p *Product) ClampQuantity(colorHex, size string, requested int) int {
	if requested < 1 {
		requested = 1
	}
	limit := p.StockQuantity
	if len(p.StockVariants) > 0 {
		limit = p.VariantStock(colorHex, size)
	}
	if limit < 1 {
		limit = 1
	}
	if requested > limit {
		return limit
	}
	return requested
}

// Selection tracks the shopper's current color/size/quantity choice on
// a product page. Switching color or size resets the quantity to 1 so a
// quantity valid for the previous variant cannot leak onto the new one.
type Selection struct {
	Product  *Product
	ColorHex string
	Size     string
	Quantity int
}

// DefaultSelection prefers the first (color, size) combination with
// positive stock, falling back to the first listed color and size.
func (p *Product) DefaultSelection() Selection {
	sel := Selection{Product: p, Quantity: 1}
	if len(p.Colors) > 0 {
		sel.ColorHex = p.Colors[0].Hex
	}
	if len(p.AvailableSizes) > 0 {
		sel.Size = p.AvailableSizes[0]
	}

	for _, c := range p.Colors {
		if !p.IsColorAvailable(c.Hex) {
			continue
		}
		for _, s := range p.AvailableSizes {
			if p.IsSizeAvailable(s, c.Hex) {
				sel.ColorHex = c.Hex
				sel.Size = s
				return sel
			}
		}
	}
	return sel
}

// SelectColor switches the color and resets the quantity to 1.
func (s *Selection) SelectColor(colorHex string) {
	s.ColorHex = colorHex
	s.Quantity = 1
}

// SelectSize switches the size and resets the quantity to 1.
func (s *Selection) SelectSize(size string) {
	s.Size = size
	s.Quantity = 1
}

// SetQuantity clamps the requested quantity against the selected
// variant's stock.
func (s *Selection) SetQuantity(requested int) {
	s.Quantity = s.Product.ClampQuantity(s.ColorHex, s.Size, requested)
}
