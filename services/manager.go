package services

import (
	"ouardatie_server/database"
	"ouardatie_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	AuthService     *AuthService
	EmailService    *EmailService
	CacheService    *CacheService
	HealthService   *HealthService
	ProductService  *ProductService
	ShippingService *ShippingService
	CartService     *CartService
	OrderService    *OrderService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *ServiceManager {
	cacheService := NewCacheService(logger, cfg)
	authService := NewAuthService(cfg, logger, db, cacheService)
	emailService := NewEmailService(logger, cfg)
	healthService := NewHealthService(logger, db, cacheService)
	productService := NewProductService(logger, db, cacheService)
	shippingService := NewShippingService(logger, db, cacheService)
	cartService := NewCartService(logger, cfg, cacheService, productService)
	orderService := NewOrderService(logger, cfg, db, productService, shippingService, emailService)

	return &ServiceManager{
		AuthService:     authService,
		EmailService:    emailService,
		CacheService:    cacheService,
		HealthService:   healthService,
		ProductService:  productService,
		ShippingService: shippingService,
		CartService:     cartService,
		OrderService:    orderService,
	}
}
