package api

import (
	"ouardatie_server/api/admin"
	"ouardatie_server/api/auth"
	"ouardatie_server/api/cart"
	"ouardatie_server/api/health"
	"ouardatie_server/api/middleware"
	"ouardatie_server/api/orders"
	"ouardatie_server/api/products"
	"ouardatie_server/api/shipping"
	"ouardatie_server/services"
	"ouardatie_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	productRoutes  *products.ProductRoutesManager
	healthRoutes   *health.HealthRoutesManager
	authRoutes     *auth.AuthRoutesManager
	adminRoutes    *admin.AdminRoutesManager
	orderRoutes    *orders.OrderRoutesManager
	cartRoutes     *cart.CartRoutesManager
	shippingRoutes *shipping.ShippingRoutesManager
}

func NewRouterManager(
	logger *gecho.Logger,
	cfg *structs.Config,
	sm *services.ServiceManager,
	mw *middleware.Middleware,
) *routerManager {
	return &routerManager{
		productRoutes:  products.NewProductRoutesManager(logger, sm.ProductService),
		healthRoutes:   health.NewHealthRoutesManager(sm.HealthService),
		authRoutes:     auth.NewAuthRoutesManager(logger, cfg, sm.AuthService, sm.CacheService, mw),
		adminRoutes:    admin.NewAdminRoutesManager(logger, sm.ProductService, sm.OrderService, sm.ShippingService, sm.AuthService, mw),
		orderRoutes:    orders.NewOrderRoutesManager(logger, cfg, sm.OrderService, sm.CartService, mw),
		cartRoutes:     cart.NewCartRoutesManager(logger, cfg, sm.CartService),
		shippingRoutes: shipping.NewShippingRoutesManager(logger, sm.ShippingService, sm.CartService),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.productRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
	rm.authRoutes.RegisterRoutes(r)
	rm.adminRoutes.RegisterRoutes(r)
	rm.orderRoutes.RegisterRoutes(r)
	rm.cartRoutes.RegisterRoutes(r)
	rm.shippingRoutes.RegisterRoutes(r)
}
