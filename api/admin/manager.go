package admin

import (
	"ouardatie_server/api/middleware"
	"ouardatie_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AdminRoutesManager struct {
	logger          *gecho.Logger
	productService  *services.ProductService
	orderService    *services.OrderService
	shippingService *services.ShippingService
	authService     *services.AuthService
	mw              *middleware.Middleware
}

func NewAdminRoutesManager(
	logger *gecho.Logger,
	productService *services.ProductService,
	orderService *services.OrderService,
	shippingService *services.ShippingService,
	authService *services.AuthService,
	mw *middleware.Middleware,
) *AdminRoutesManager {
	return &AdminRoutesManager{
		logger:          logger,
		productService:  productService,
		orderService:    orderService,
		shippingService: shippingService,
		authService:     authService,
		mw:              mw,
	}
}

func (arm *AdminRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(arm.mw.UserAuthMiddleware)
		r.Use(arm.mw.AdminAuthMiddleware)

		r.Get("/products", arm.ListProducts)
		r.Get("/orders", arm.ListOrders)
		r.Get("/orders/{id}", arm.GetOrderDetails)
		r.Get("/users", arm.ListUsers)

		// Mutations sit behind CSRF
		r.Group(func(r chi.Router) {
			r.Use(arm.mw.CSRFMiddleware())

			r.Post("/products", arm.CreateProduct)
			r.Put("/products/{id}", arm.UpdateProduct)
			r.Delete("/products/{id}", arm.DeleteProduct)

			r.Post("/categories", arm.CreateCategory)
			r.Delete("/categories/{id}", arm.DeleteCategory)

			r.Post("/shipping/options", arm.CreateShippingOption)
			r.Put("/shipping/options/{id}", arm.UpdateShippingOption)
			r.Delete("/shipping/options/{id}", arm.DeleteShippingOption)

			r.Post("/shipping/communes", arm.CreateCommune)
			r.Delete("/shipping/communes/{id}", arm.DeleteCommune)

			r.Put("/orders/{id}/status", arm.UpdateOrderStatus)

			r.Post("/users/{id}/recompute-stats", arm.RecomputeUserStats)
		})
	})
}
