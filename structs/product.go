package structs

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Color is a selectable product color. The legacy store kept
// available_colors as an array of strings where each entry was either a
// plain color name or a JSON-encoded {"hex","name"} record; decoding
// accepts all three shapes and normalizes to this struct.
type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex,omitempty"`
}

func (c *Color) UnmarshalJSON(data []byte) error {
	type alias Color
	var obj alias
	if err := json.Unmarshal(data, &obj); err == nil && (obj.Name != "" || obj.Hex != "") {
		*c = Color(obj)
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("color entry is neither object nor string: %w", err)
	}

	// Legacy double-encoded entry: a string holding a JSON object.
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") {
		if err := json.Unmarshal([]byte(trimmed), &obj); err == nil {
			*c = Color(obj)
			return nil
		}
	}

	// Oldest format: bare color name.
	*c = Color{Name: raw}
	return nil
}

// ColorList is stored as jsonb. Malformed entries are dropped rather
// than failing the whole row.
type ColorList []Color

func (cl *ColorList) Scan(src any) error {
	data, err := jsonbBytes(src)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		*cl = nil
		return nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return fmt.Errorf("failed to decode colors column: %w", err)
	}

	out := make(ColorList, 0, len(raws))
	for _, r := range raws {
		var c Color
		if err := json.Unmarshal(r, &c); err != nil {
			continue
		}
		out = append(out, c)
	}
	*cl = out
	return nil
}

func (cl ColorList) Value() (driver.Value, error) {
	if cl == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(cl)
}

// Names returns the color names, used by the catalog color filter.
func (cl ColorList) Names() []string {
	names := make([]string, 0, len(cl))
	for _, c := range cl {
		names = append(names, c.Name)
	}
	return names
}

// StockVariant is a (color, size) combination with its own quantity.
type StockVariant struct {
	Color    string `json:"color"`
	ColorHex string `json:"colorHex"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

func (v *StockVariant) UnmarshalJSON(data []byte) error {
	type alias StockVariant
	var obj alias
	if err := json.Unmarshal(data, &obj); err == nil {
		*v = StockVariant(obj)
		return nil
	}

	// Legacy double-encoded entry.
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("stock variant entry is neither object nor string: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return fmt.Errorf("failed to decode legacy stock variant: %w", err)
	}
	*v = StockVariant(obj)
	return nil
}

// StockVariantList is stored as jsonb, same drop-on-malformed policy as
// ColorList.
type StockVariantList []StockVariant

func (vl *StockVariantList) Scan(src any) error {
	data, err := jsonbBytes(src)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		*vl = nil
		return nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return fmt.Errorf("failed to decode stock_variants column: %w", err)
	}

	out := make(StockVariantList, 0, len(raws))
	for _, r := range raws {
		var v StockVariant
		if err := json.Unmarshal(r, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	*vl = out
	return nil
}

func (vl StockVariantList) Value() (driver.Value, error) {
	if vl == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(vl)
}

func jsonbBytes(src any) ([]byte, error) {
	switch s := src.(type) {
	case nil:
		return nil, nil
	case []byte:
		return s, nil
	case string:
		return []byte(s), nil
	default:
		return nil, errors.New("unsupported jsonb source type")
	}
}

// Price brackets offered by the shop filter.
const (
	PriceBracketAll        = "all"
	PriceBracketUnder2000  = "under-2000"
	PriceBracket2000To5000 = "2000-5000"
	PriceBracketOver5000   = "over-5000"
)

// Sort orders offered by the shop.
const (
	SortNewest      = "newest"
	SortPriceLow    = "price-low"
	SortPriceHigh   = "price-high"
	SortBestSellers = "best-sellers"
)

// ProductListOptions carries the shop's filter and sort parameters.
type ProductListOptions struct {
	SearchTerm   string
	CategoryID   string // "all" or empty means no category filter
	Size         string // "all" or empty means no size filter
	Color        string // color name; "all" or empty means no color filter
	PriceBracket string
	SortBy       string
	Page         int
	PageSize     int

	FeaturedOnly  bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// ProductRequest is the admin create/update payload.
type ProductRequest struct {
	Name           string           `json:"name" validate:"required,min=2,max=200"`
	Description    string           `json:"description" validate:"omitempty,max=5000"`
	Price          int64            `json:"price" validate:"required,gte=0"`
	CategoryID     *string          `json:"category_id" validate:"omitempty,uuid4"`
	Images         []string         `json:"images" validate:"omitempty,dive,url"`
	AvailableSizes []string         `json:"available_sizes"`
	Colors         ColorList        `json:"colors"`
	StockQuantity  int              `json:"stock_quantity" validate:"gte=0"`
	StockVariants  StockVariantList `json:"stock_variants"`
	IsFeatured     bool             `json:"is_featured"`
	IsOnPromotion  bool             `json:"is_on_promotion"`
	PromotionPrice *int64           `json:"promotion_price" validate:"omitempty,gte=0"`
}
