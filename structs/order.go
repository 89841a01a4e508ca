package structs

// CheckoutRequest is the order placement payload. Wilaya and commune
// are required; an order cannot be shipped without both.
type CheckoutRequest struct {
	CustomerName  string `json:"customer_name" validate:"required,min=2,max=100"`
	CustomerPhone string `json:"customer_phone" validate:"required,min=8,max=20"`
	Wilaya        string `json:"wilaya" validate:"required"`
	Commune       string `json:"commune" validate:"required"`
	ShippingType  string `json:"shipping_type" validate:"required,oneof=desk home"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=cash card"`
}

// QuoteRequest asks for a checkout price breakdown before the order is
// placed.
type QuoteRequest struct {
	Wilaya       string `json:"wilaya" validate:"required"`
	ShippingType string `json:"shipping_type" validate:"required,oneof=desk home"`
}

// Quote is the price breakdown for a cart against a shipping choice.
// ShippingFound is false when no shipping option covers the wilaya; the
// cost is then zero and the storefront warns that shipping will be
// confirmed by phone.
type Quote struct {
	Subtotal      int64 `json:"subtotal"`
	ShippingCost  int64 `json:"shipping_cost"`
	Total         int64 `json:"total"`
	ShippingFound bool  `json:"shipping_found"`
}

// OrderStatusRequest is the admin status transition payload.
type OrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed shipped delivered canceled"`
}

// ShippingOptionRequest is the admin create/update payload for per
// wilaya shipping prices.
type ShippingOptionRequest struct {
	Wilaya    string `json:"wilaya" validate:"required,min=2,max=100"`
	DeskPrice int64  `json:"desk_price" validate:"gte=0"`
	HomePrice int64  `json:"home_price" validate:"gte=0"`
}

// CommuneRequest is the admin create/update payload for communes.
type CommuneRequest struct {
	Wilaya      string `json:"wilaya" validate:"required,min=2,max=100"`
	CommuneName string `json:"commune_name" validate:"required,min=1,max=100"`
}

// CategoryRequest is the admin create/update payload for categories.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}
