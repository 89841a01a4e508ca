package services

import (
	"context"
	"ouardatie_server/database"
	"ouardatie_server/lib"
	"ouardatie_server/structs"
	"ouardatie_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

type ShippingService struct {
	logger       *gecho.Logger
	db           *database.DB
	cacheService *CacheService
}

func NewShippingService(logger *gecho.Logger, db *database.DB, cacheService *CacheService) *ShippingService {
	return &ShippingService{
		logger:       logger,
		db:           db,
		cacheService: cacheService,
	}
}

// GetShippingOptions returns all per-wilaya shipping prices, cached
func (ss *ShippingService) GetShippingOptions(ctx context.Context) ([]tables.ShippingOption, error) {
	if cached, err := ss.cacheService.GetShippingOptions(); err == nil && cached != nil {
		return cached, nil
	}

	options, err := database.Query[tables.ShippingOption](ss.db).
		OrderBy("wilaya", database.ASC).
		All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	if err := ss.cacheService.SetShippingOptions(options); err != nil {
		ss.logger.Warn("Failed to cache shipping options", gecho.Field("error", err))
	}

	return options, nil
}

// GetCommunesForWilaya returns the communes of a wilaya. The commune
// dataset spells wilaya names differently from shipping_options, so the
// match folds accents instead of comparing raw strings.
func (ss *ShippingService) GetCommunesForWilaya(ctx context.Context, wilaya string) ([]tables.Commune, error) {
	communes, err := database.Query[tables.Commune](ss.db).
		OrderBy("commune_name", database.ASC).
		All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	matched := make([]tables.Commune, 0)
	for _, c := range communes {
		if lib.NamesMatch(c.Wilaya, wilaya) {
			matched = append(matched, c)
		}
	}

	return matched, nil
}

// ShippingCost resolves the delivery price for a wilaya and shipping
// type. The second return value reports whether a matching option was
// found; when it is false the cost is zero and the storefront shows a
// "shipping confirmed by phone" notice instead of failing checkout.
func (ss *ShippingService) ShippingCost(ctx context.Context, wilaya string, shippingType tables.ShippingType) (int64, bool, error) {
	options, err := ss.GetShippingOptions(ctx)
	if err != nil {
		return 0, false, err
	}

	cost, found := resolveShippingCost(options, wilaya, shippingType)
	if !found {
		ss.logger.Warn("No shipping option for wilaya", gecho.Field("wilaya", wilaya))
	}

	return cost, found, nil
}

// resolveShippingCost picks the delivery price for a wilaya from a
// loaded option list. The wilaya match folds accents, same as the
// commune lookup.
func resolveShippingCost(options []tables.ShippingOption, wilaya string, shippingType tables.ShippingType) (int64, bool) {
	for _, opt := range options {
		if !lib.NamesMatch(opt.Wilaya, wilaya) {
			continue
		}
		if shippingType == tables.ShippingTypeHome {
			return opt.HomePrice, true
		}
		return opt.DeskPrice, true
	}
	return 0, false
}

// QuoteCart prices a cart against a shipping destination
func (ss *ShippingService) QuoteCart(ctx context.Context, cart *structs.Cart, wilaya string, shippingType tables.ShippingType) (*structs.Quote, error) {
	cost, found, err := ss.ShippingCost(ctx, wilaya, shippingType)
	if err != nil {
		return nil, err
	}

	return buildQuote(cart, cost, found), nil
}

// buildQuote folds a resolved shipping cost into the cart's totals
func buildQuote(cart *structs.Cart, cost int64, found bool) *structs.Quote {
	subtotal := cart.TotalPrice()
	return &structs.Quote{
		Subtotal:      subtotal,
		ShippingCost:  cost,
		Total:         subtotal + cost,
		ShippingFound: found,
	}
}

// CreateShippingOption inserts a new per-wilaya price row
func (ss *ShippingService) CreateShippingOption(ctx context.Context, req *structs.ShippingOptionRequest) (*tables.ShippingOption, error) {
	option := &tables.ShippingOption{
		Wilaya:    req.Wilaya,
		DeskPrice: req.DeskPrice,
		HomePrice: req.HomePrice,
	}

	created, err := database.Query[tables.ShippingOption](ss.db).Insert(ctx, option)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	if err := ss.cacheService.InvalidateShippingCache(); err != nil {
		ss.logger.Warn("Failed to invalidate shipping cache", gecho.Field("error", err))
	}

	return created, nil
}

// UpdateShippingOption updates the prices of an existing row
func (ss *ShippingService) UpdateShippingOption(ctx context.Context, id uuid.UUID, req *structs.ShippingOptionRequest) (*tables.ShippingOption, error) {
	updated, err := database.Query[tables.ShippingOption](ss.db).
		Where("id", id).
		UpdateReturning(ctx, map[string]any{
			"wilaya":     req.Wilaya,
			"desk_price": req.DeskPrice,
			"home_price": req.HomePrice,
		})
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if len(updated) == 0 {
		return nil, lib.ErrNotFound
	}

	if err := ss.cacheService.InvalidateShippingCache(); err != nil {
		ss.logger.Warn("Failed to invalidate shipping cache", gecho.Field("error", err))
	}

	return &updated[0], nil
}

// DeleteShippingOption removes a per-wilaya price row
func (ss *ShippingService) DeleteShippingOption(ctx context.Context, id uuid.UUID) error {
	affected, err := database.Query[tables.ShippingOption](ss.db).
		Where("id", id).
		Delete(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	if affected == 0 {
		return lib.ErrNotFound
	}

	if err := ss.cacheService.InvalidateShippingCache(); err != nil {
		ss.logger.Warn("Failed to invalidate shipping cache", gecho.Field("error", err))
	}

	return nil
}

// CreateCommune inserts a commune row
func (ss *ShippingService) CreateCommune(ctx context.Context, req *structs.CommuneRequest) (*tables.Commune, error) {
	commune := &tables.Commune{
		Wilaya:      req.Wilaya,
		CommuneName: req.CommuneName,
	}

	created, err := database.Query[tables.Commune](ss.db).Insert(ctx, commune)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	return created, nil
}

// DeleteCommune removes a commune row
func (ss *ShippingService) DeleteCommune(ctx context.Context, id uuid.UUID) error {
	affected, err := database.Query[tables.Commune](ss.db).
		Where("id", id).
		Delete(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	if affected == 0 {
		return lib.ErrNotFound
	}

	return nil
}
