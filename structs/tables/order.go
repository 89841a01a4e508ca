package tables

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	// Table name and identifiers
	tableName   struct{}  `bun:"table:orders,alias:o"`
	ID          uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	OrderNumber string    `bun:"order_number,notnull,unique" json:"order_number"`

	// Optional link to a registered customer; nil for guest orders
	UserID *uuid.UUID `bun:"user_id,type:uuid" json:"user_id,omitempty"`

	// Customer data
	CustomerName  string `bun:"customer_name,notnull" json:"customer_name"`
	CustomerPhone string `bun:"customer_phone,notnull" json:"customer_phone"`

	// Delivery destination
	Wilaya       string       `bun:"wilaya,notnull" json:"wilaya"`
	Commune      string       `bun:"commune,notnull" json:"commune"`
	ShippingType ShippingType `bun:"shipping_type,notnull" json:"shipping_type"`
	ShippingCost int64        `bun:"shipping_cost,notnull" json:"shipping_cost"`

	// Totals; total_amount = sum(items) + shipping_cost at creation
	TotalAmount int64 `bun:"total_amount,notnull" json:"total_amount"`

	Status        OrderStatus   `bun:"status,notnull,default:'pending'" json:"status"`
	PaymentMethod PaymentMethod `bun:"payment_method,notnull" json:"payment_method"`

	CreatedAt time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:now()" json:"updated_at"`

	Items []*OrderItem `bun:"rel:has-many,join:id=order_id" json:"items,omitempty"`
}

type OrderItem struct {
	tableName struct{}  `bun:"table:order_items,alias:oi"`
	ID        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	OrderID   uuid.UUID `bun:"order_id,notnull,type:uuid" json:"order_id"`

	// Nullable so deleting a product does not orphan past orders
	ProductID *uuid.UUID `bun:"product_id,type:uuid" json:"product_id,omitempty"`

	// Snapshot of the product at order time
	ProductName  string `bun:"product_name,notnull" json:"product_name"`
	ProductPrice int64  `bun:"product_price,notnull" json:"product_price"`
	Quantity     int    `bun:"quantity,notnull" json:"quantity"`
	Size         string `bun:"size,notnull" json:"size"`
	Color        string `bun:"color,notnull" json:"color"`

	CreatedAt time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCanceled  OrderStatus = "canceled"
)

type ShippingType string

const (
	ShippingTypeDesk ShippingType = "desk"
	ShippingTypeHome ShippingType = "home"
)

type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
)

// Subtotal is the items total without shipping.
func (o *Order) Subtotal() int64 {
	var sum int64
	for _, item := range o.Items {
		sum += item.ProductPrice * int64(item.Quantity)
	}
	return sum
}
