package tables

import (
	"time"

	"github.com/google/uuid"
)

type AuthResponse struct {
	User         *Profile `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
}

// Profile is a customer account. The purchase stats columns are a
// denormalized cache recomputed from the orders table on every status
// change; they are never incremented in place.
type Profile struct {
	tableName    struct{}  `bun:"table:profiles,alias:pr"`
	ID           uuid.UUID `json:"id" bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Username     string    `json:"username" bun:"username,unique,notnull"`
	Email        string    `json:"email" bun:"email,unique,notnull"`
	PasswordHash string    `json:"-" bun:"password_hash,notnull"`
	IsAdmin      bool      `json:"is_admin" bun:"is_admin,notnull,default:false"`

	TotalPurchases   int        `json:"total_purchases" bun:"total_purchases,notnull,default:0"`
	TotalSpent       int64      `json:"total_spent" bun:"total_spent,notnull,default:0"`
	LastPurchaseDate *time.Time `json:"last_purchase_date,omitempty" bun:"last_purchase_date,nullzero"`

	LastLogin time.Time `json:"last_login" bun:"last_login,default:now()"`
	CreatedAt time.Time `json:"created_at" bun:"created_at,notnull,default:now()"`
	UpdatedAt time.Time `json:"updated_at" bun:"updated_at,notnull,default:now()"`
}

// Role maps the admin flag onto the role claim carried in tokens.
func (p *Profile) Role() string {
	if p.IsAdmin {
		return "admin"
	}
	return "user"
}
