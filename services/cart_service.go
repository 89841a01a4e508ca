package services

import (
	"context"
	"errors"
	"ouardatie_server/lib"
	"ouardatie_server/structs"
	"ouardatie_server/structs/tables"
	"strings"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

var (
	ErrCartLineNotFound  = errors.New("cart line not found")
	ErrVariantOutOfStock = errors.New("selected variant is out of stock")
)

// cartStore is the persistence surface CartService needs from the cache
type cartStore interface {
	GetCart(token string) (*structs.Cart, error)
	SetCart(token string, cart *structs.Cart) error
	DeleteCart(token string) error
}

// CartService manages per-token shopping carts. Carts live in Redis with
// an idle TTL; when Redis is unreachable a process-local map keeps the
// storefront usable at the cost of losing carts on restart.
type CartService struct {
	logger         *gecho.Logger
	config         *structs.Config
	store          cartStore
	productService *ProductService

	mu       sync.RWMutex
	fallback map[string]*structs.Cart
}

func NewCartService(logger *gecho.Logger, cfg *structs.Config, cacheService *CacheService, productService *ProductService) *CartService {
	return &CartService{
		logger:         logger,
		config:         cfg,
		store:          cacheService,
		productService: productService,
		fallback:       make(map[string]*structs.Cart),
	}
}

// NewCartToken mints the opaque token carried in the cart cookie
func (cs *CartService) NewCartToken() (string, error) {
	return lib.GenerateRandomToken()
}

// GetCart loads the cart for a token, returning an empty cart when none
// is stored. The fallback map is consulted on cache misses too: a cart
// parked there during a Redis outage must survive the recovery until a
// successful write moves it back.
func (cs *CartService) GetCart(token string) *structs.Cart {
	cart, err := cs.store.GetCart(token)
	if err != nil {
		cs.logger.Warn("Cart cache read failed, using local fallback", gecho.Field("error", err))
	}
	if cart != nil {
		return cart
	}

	cs.mu.RLock()
	local, ok := cs.fallback[token]
	cs.mu.RUnlock()
	if ok {
		// Copy so handlers never mutate the shared entry outside cs.mu
		return local.Clone()
	}

	return &structs.Cart{Token: token, UpdatedAt: time.Now()}
}

// saveCart persists the cart, falling back to the local map when the
// cache write fails
func (cs *CartService) saveCart(cart *structs.Cart) {
	if err := cs.store.SetCart(cart.Token, cart); err != nil {
		cs.logger.Warn("Cart cache write failed, using local fallback", gecho.Field("error", err))
		cs.mu.Lock()
		cs.fallback[cart.Token] = cart.Clone()
		cs.mu.Unlock()
		return
	}

	// A successful cache write supersedes any fallback copy
	cs.mu.Lock()
	delete(cs.fallback, cart.Token)
	cs.mu.Unlock()
}

// AddItem resolves the product, clamps the requested quantity against
// the selected variant's stock and merges the line into the cart.
func (cs *CartService) AddItem(ctx context.Context, token string, req *structs.CartItemRequest) (*structs.Cart, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, err
	}

	product, err := cs.productService.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	colorHex := colorHexFor(product, req.Color)
	if product.IsOutOfStock() || !product.IsSizeAvailable(req.Size, colorHex) {
		return nil, ErrVariantOutOfStock
	}

	quantity := product.ClampQuantity(colorHex, req.Size, req.Quantity)

	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}

	cart := cs.GetCart(token)
	cart.AddItem(structs.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.EffectivePrice(),
		Quantity:  quantity,
		Size:      req.Size,
		Color:     req.Color,
		Image:     image,
	})

	cs.saveCart(cart)
	return cart, nil
}

// UpdateQuantity replaces a line's quantity, clamped against stock
func (cs *CartService) UpdateQuantity(ctx context.Context, token string, req *structs.CartItemRequest) (*structs.Cart, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, err
	}

	product, err := cs.productService.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	colorHex := colorHexFor(product, req.Color)
	quantity := product.ClampQuantity(colorHex, req.Size, req.Quantity)

	cart := cs.GetCart(token)
	if !cart.UpdateQuantity(productID, req.Size, req.Color, quantity) {
		return nil, ErrCartLineNotFound
	}

	cs.saveCart(cart)
	return cart, nil
}

// RemoveItem drops a line from the cart
func (cs *CartService) RemoveItem(token string, key *structs.CartLineKey) (*structs.Cart, error) {
	productID, err := uuid.Parse(key.ProductID)
	if err != nil {
		return nil, err
	}

	cart := cs.GetCart(token)
	cart.RemoveItem(productID, key.Size, key.Color)

	cs.saveCart(cart)
	return cart, nil
}

// ClearCart empties and removes the persisted cart
func (cs *CartService) ClearCart(token string) {
	if err := cs.store.DeleteCart(token); err != nil {
		cs.logger.Warn("Failed to delete cart from cache", gecho.Field("error", err))
	}
	cs.mu.Lock()
	delete(cs.fallback, token)
	cs.mu.Unlock()
}

// colorHexFor maps a color name back to its hex, which is what stock
// variants are keyed by. Unknown names return an empty hex so the size
// check degrades to "any variant of that size".
func colorHexFor(product *tables.Product, colorName string) string {
	for _, c := range product.Colors {
		if strings.EqualFold(c.Name, colorName) {
			return c.Hex
		}
	}
	return ""
}
