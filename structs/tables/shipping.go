package tables

import (
	"time"

	"github.com/google/uuid"
)

// ShippingOption holds per-wilaya delivery prices for the two delivery
// modes (desk pickup point and home delivery).
type ShippingOption struct {
	tableName struct{}  `bun:"table:shipping_options,alias:so"`
	ID        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Wilaya    string    `bun:"wilaya,notnull,unique" json:"wilaya"`
	DeskPrice int64     `bun:"desk_price,notnull" json:"desk_price"`
	HomePrice int64     `bun:"home_price,notnull" json:"home_price"`
	CreatedAt time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
}

// Commune is a second-level subdivision. Wilaya spelling is not
// guaranteed to match shipping_options (accents differ between the two
// imports), so matching goes through lib.NormalizeName.
type Commune struct {
	tableName   struct{}  `bun:"table:communes,alias:cm"`
	ID          uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Wilaya      string    `bun:"wilaya,notnull" json:"wilaya"`
	CommuneName string    `bun:"commune_name,notnull" json:"commune_name"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
}
