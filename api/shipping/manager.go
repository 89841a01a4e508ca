package shipping

import (
	"ouardatie_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ShippingRoutesManager struct {
	logger          *gecho.Logger
	shippingService *services.ShippingService
	cartService     *services.CartService
}

func NewShippingRoutesManager(
	logger *gecho.Logger,
	shippingService *services.ShippingService,
	cartService *services.CartService,
) *ShippingRoutesManager {
	return &ShippingRoutesManager{
		logger:          logger,
		shippingService: shippingService,
		cartService:     cartService,
	}
}

func (srm *ShippingRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/shipping", func(r chi.Router) {
		r.Get("/options", srm.FetchShippingOptions)
		r.Get("/communes", srm.FetchCommunes)
	})
	r.Post("/checkout/quote", srm.QuoteCheckout)
}
