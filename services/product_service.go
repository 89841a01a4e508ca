package services

import (
	"context"
	"ouardatie_server/database"
	"ouardatie_server/lib"
	"ouardatie_server/structs"
	"ouardatie_server/structs/tables"
	"strings"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// effectivePriceExpr resolves the price a shopper actually pays; promotion
// price wins while a promotion is active.
const effectivePriceExpr = "(CASE WHEN p.is_on_promotion AND p.promotion_price IS NOT NULL THEN p.promotion_price ELSE p.price END)"

type ProductService struct {
	logger       *gecho.Logger
	db           *database.DB
	cacheService *CacheService
}

func NewProductService(logger *gecho.Logger, db *database.DB, cacheService *CacheService) *ProductService {
	return &ProductService{
		logger:       logger,
		db:           db,
		cacheService: cacheService,
	}
}

// ListProducts returns the filtered, sorted product catalog and the total
// match count. Search, category, price bracket and sorting run in SQL;
// size and color membership run in memory because those live in legacy
// array/jsonb columns that cannot be indexed reliably.
func (ps *ProductService) ListProducts(ctx context.Context, opts *structs.ProductListOptions) ([]tables.Product, int, error) {
	query := ps.buildListQuery(opts)

	// Size and color filters force in-memory filtering, so pagination has
	// to happen after the filter pass rather than in SQL
	inMemory := isFilterSet(opts.Size) || isFilterSet(opts.Color)

	page := opts.Page
	if page < 1 {
		page = 1
	}
	pageSize := opts.PageSize
	if pageSize < 1 {
		pageSize = 24
	}

	if !inMemory {
		count, err := ps.buildListQuery(opts).Count(ctx)
		if err != nil {
			return nil, 0, lib.MapPgError(err)
		}

		products, err := database.Paginate(query, page, pageSize).All(ctx)
		if err != nil {
			return nil, 0, lib.MapPgError(err)
		}

		return products, count, nil
	}

	products, err := query.All(ctx)
	if err != nil {
		return nil, 0, lib.MapPgError(err)
	}

	filtered := make([]tables.Product, 0, len(products))
	for _, p := range products {
		if isFilterSet(opts.Size) && !hasSize(&p, opts.Size) {
			continue
		}
		if isFilterSet(opts.Color) && !hasColor(&p, opts.Color) {
			continue
		}
		filtered = append(filtered, p)
	}

	count := len(filtered)
	start := (page - 1) * pageSize
	if start >= count {
		return []tables.Product{}, count, nil
	}
	end := min(start+pageSize, count)

	return filtered[start:end], count, nil
}

// buildListQuery assembles the SQL side of the catalog filter
func (ps *ProductService) buildListQuery(opts *structs.ProductListOptions) *database.QueryBuilder[tables.Product] {
	query := database.Query[tables.Product](ps.db)

	if opts.SearchTerm != "" {
		pattern := "%" + opts.SearchTerm + "%"
		query = query.WhereRaw("(p.name ILIKE ? OR p.description ILIKE ?)", pattern, pattern)
	}

	if isFilterSet(opts.CategoryID) {
		query = query.Where("category_id", opts.CategoryID)
	}

	if opts.FeaturedOnly {
		query = query.Where("is_featured", true)
	}

	switch opts.PriceBracket {
	case structs.PriceBracketUnder2000:
		query = query.WhereRaw(effectivePriceExpr + " < 2000")
	case structs.PriceBracket2000To5000:
		query = query.WhereRaw(effectivePriceExpr + " >= 2000 AND " + effectivePriceExpr + " <= 5000")
	case structs.PriceBracketOver5000:
		query = query.WhereRaw(effectivePriceExpr + " > 5000")
	}

	if opts.CreatedAfter != nil {
		query = query.WhereOp("created_at", ">=", *opts.CreatedAfter)
	}
	if opts.CreatedBefore != nil {
		query = query.WhereOp("created_at", "<=", *opts.CreatedBefore)
	}

	switch opts.SortBy {
	case structs.SortPriceLow:
		query = query.OrderByRaw(effectivePriceExpr + " ASC")
	case structs.SortPriceHigh:
		query = query.OrderByRaw(effectivePriceExpr + " DESC")
	case structs.SortBestSellers:
		// Featured products lead, newest follow
		query = query.OrderBy("is_featured", database.DESC).
			OrderBy("created_at", database.DESC)
	default: // SortNewest
		query = query.OrderBy("created_at", database.DESC)
	}

	return query
}

// isFilterSet reports whether a filter value actually narrows results;
// the storefront sends "all" for cleared filters.
func isFilterSet(val string) bool {
	return val != "" && val != "all"
}

func hasSize(p *tables.Product, size string) bool {
	for _, s := range p.AvailableSizes {
		if strings.EqualFold(s, size) {
			return true
		}
	}
	return false
}

func hasColor(p *tables.Product, color string) bool {
	for _, c := range p.Colors {
		if strings.EqualFold(c.Name, color) {
			return true
		}
	}
	return false
}

// GetProductByID fetches one product, cache first
func (ps *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*tables.Product, error) {
	if cached, err := ps.cacheService.GetProductByID(id.String()); err == nil && cached != nil {
		return cached, nil
	}

	product, err := database.FindByID[tables.Product](ctx, ps.db, id)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if product == nil {
		return nil, lib.ErrNotFound
	}

	if err := ps.cacheService.SetProductByID(product); err != nil {
		ps.logger.Warn("Failed to cache product", gecho.Field("error", err), gecho.Field("id", id))
	}

	return product, nil
}

// GetProductsByIds fetches a batch of products by primary key
func (ps *ProductService) GetProductsByIds(ctx context.Context, ids []uuid.UUID) ([]*tables.Product, error) {
	if len(ids) == 0 {
		return []*tables.Product{}, nil
	}

	idsIface := make([]any, len(ids))
	for i, id := range ids {
		idsIface[i] = id
	}

	products, err := database.Query[tables.Product](ps.db).
		WhereIn("id", idsIface).
		All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	result := make([]*tables.Product, len(products))
	for i := range products {
		result[i] = &products[i]
	}

	return result, nil
}

// GetFeaturedProducts returns the products highlighted on the home page
func (ps *ProductService) GetFeaturedProducts(ctx context.Context, limit int) ([]tables.Product, error) {
	if limit < 1 {
		limit = 8
	}

	products, err := database.Query[tables.Product](ps.db).
		Where("is_featured", true).
		OrderBy("created_at", database.DESC).
		Limit(limit).
		All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	return products, nil
}

// GetRelatedProducts returns other products from the same category for
// the product page. Products without a category have no related set.
func (ps *ProductService) GetRelatedProducts(ctx context.Context, product *tables.Product, limit int) ([]tables.Product, error) {
	if product.CategoryID == nil {
		return []tables.Product{}, nil
	}
	if limit < 1 {
		limit = 4
	}

	products, err := database.Query[tables.Product](ps.db).
		Where("category_id", *product.CategoryID).
		WhereNot("id", product.ID).
		OrderBy("created_at", database.DESC).
		Limit(limit).
		All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	return products, nil
}

// CreateProduct inserts a product from an admin payload, generating a SKU
// and deriving the stock status from the quantities
func (ps *ProductService) CreateProduct(ctx context.Context, req *structs.ProductRequest) (*tables.Product, error) {
	sku, err := lib.GenerateSKU(req.Name, 6)
	if err != nil {
		return nil, err
	}

	product := &tables.Product{
		Name:           req.Name,
		SKU:            sku,
		Description:    req.Description,
		Price:          req.Price,
		Images:         req.Images,
		AvailableSizes: req.AvailableSizes,
		Colors:         req.Colors,
		StockQuantity:  req.StockQuantity,
		StockVariants:  req.StockVariants,
		IsFeatured:     req.IsFeatured,
		IsOnPromotion:  req.IsOnPromotion,
		PromotionPrice: req.PromotionPrice,
	}

	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, err
		}
		product.CategoryID = &categoryID
	}

	product.StockStatus = product.ResolveStockStatus()

	created, err := database.Query[tables.Product](ps.db).Insert(ctx, product)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	if err := ps.cacheService.InvalidateProductCaches(created.ID); err != nil {
		ps.logger.Warn("Failed to invalidate product caches", gecho.Field("error", err))
	}

	return created, nil
}

// UpdateProduct applies an admin payload to an existing product
func (ps *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *structs.ProductRequest) (*tables.Product, error) {
	existing, err := ps.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.Price = req.Price
	existing.Images = req.Images
	existing.AvailableSizes = req.AvailableSizes
	existing.Colors = req.Colors
	existing.StockQuantity = req.StockQuantity
	existing.StockVariants = req.StockVariants
	existing.IsFeatured = req.IsFeatured
	existing.IsOnPromotion = req.IsOnPromotion
	existing.PromotionPrice = req.PromotionPrice
	existing.CategoryID = nil
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, err
		}
		existing.CategoryID = &categoryID
	}
	existing.StockStatus = existing.ResolveStockStatus()

	updated, err := database.Query[tables.Product](ps.db).
		Where("id", id).
		UpdateReturning(ctx, map[string]any{
			"name":            existing.Name,
			"description":     existing.Description,
			"price":           existing.Price,
			"category_id":     existing.CategoryID,
			"images":          existing.Images,
			"available_sizes": existing.AvailableSizes,
			"colors":          existing.Colors,
			"stock_quantity":  existing.StockQuantity,
			"stock_status":    existing.StockStatus,
			"stock_variants":  existing.StockVariants,
			"is_featured":     existing.IsFeatured,
			"is_on_promotion": existing.IsOnPromotion,
			"promotion_price": existing.PromotionPrice,
		})
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if len(updated) == 0 {
		return nil, lib.ErrNotFound
	}

	if err := ps.cacheService.InvalidateProductCaches(id); err != nil {
		ps.logger.Warn("Failed to invalidate product caches", gecho.Field("error", err))
	}

	return &updated[0], nil
}

// DeleteProduct removes a product. Past order items keep their snapshot
// columns; only the product_id reference is nulled by the FK.
func (ps *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	affected, err := database.Query[tables.Product](ps.db).
		Where("id", id).
		Delete(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	if affected == 0 {
		return lib.ErrNotFound
	}

	if err := ps.cacheService.InvalidateProductCaches(id); err != nil {
		ps.logger.Warn("Failed to invalidate product caches", gecho.Field("error", err))
	}

	return nil
}

// AdjustVariantStock decrements the stock of the ordered (color, size)
// variant, or the flat quantity for variant-less products. Called inside
// the order transaction via raw SQL; this helper computes the new state.
func (ps *ProductService) AdjustVariantStock(product *tables.Product, colorHex, size string, delta int) {
	if len(product.StockVariants) == 0 {
		product.StockQuantity += delta
		if product.StockQuantity < 0 {
			product.StockQuantity = 0
		}
	} else {
		for i := range product.StockVariants {
			v := &product.StockVariants[i]
			if v.ColorHex == colorHex && v.Size == size {
				v.Quantity += delta
				if v.Quantity < 0 {
					v.Quantity = 0
				}
				break
			}
		}
	}
	product.StockStatus = product.ResolveStockStatus()
}

// ============================================================================
// Categories
// ============================================================================

// ListCategories returns all categories, cached
func (ps *ProductService) ListCategories(ctx context.Context) ([]tables.Category, error) {
	if cached, err := ps.cacheService.GetCategoriesList(); err == nil && cached != nil {
		return cached, nil
	}

	categories, err := database.Query[tables.Category](ps.db).
		OrderBy("name", database.ASC).
		All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	if err := ps.cacheService.SetCategoriesList(categories); err != nil {
		ps.logger.Warn("Failed to cache categories", gecho.Field("error", err))
	}

	return categories, nil
}

// CreateCategory inserts a category
func (ps *ProductService) CreateCategory(ctx context.Context, req *structs.CategoryRequest) (*tables.Category, error) {
	category := &tables.Category{Name: req.Name}

	created, err := database.Query[tables.Category](ps.db).Insert(ctx, category)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	if err := ps.cacheService.InvalidateCategoryCache(); err != nil {
		ps.logger.Warn("Failed to invalidate category cache", gecho.Field("error", err))
	}

	return created, nil
}

// DeleteCategory removes a category; products keep a dangling reference
// nulled by the FK
func (ps *ProductService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	affected, err := database.Query[tables.Category](ps.db).
		Where("id", id).
		Delete(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	if affected == 0 {
		return lib.ErrNotFound
	}

	if err := ps.cacheService.InvalidateCategoryCache(); err != nil {
		ps.logger.Warn("Failed to invalidate category cache", gecho.Field("error", err))
	}

	return nil
}
