package cart

import (
	"ouardatie_server/services"
	"ouardatie_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type CartRoutesManager struct {
	logger      *gecho.Logger
	cfg         *structs.Config
	cartService *services.CartService
}

func NewCartRoutesManager(
	logger *gecho.Logger,
	cfg *structs.Config,
	cartService *services.CartService,
) *CartRoutesManager {
	return &CartRoutesManager{
		logger:      logger,
		cfg:         cfg,
		cartService: cartService,
	}
}

func (crm *CartRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/cart", func(r chi.Router) {
		r.Get("/", crm.FetchCart)
		r.Post("/items", crm.AddItem)
		r.Put("/items", crm.UpdateQuantity)
		r.Delete("/items", crm.RemoveItem)
		r.Delete("/", crm.ClearCart)
	})
}
