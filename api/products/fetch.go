package products

import (
	"net/http"
	"ouardatie_server/handling"
	"ouardatie_server/lib"
	"strconv"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// FetchProducts handles GET /products with filtering, sorting and pagination
func (prm *ProductRoutesManager) FetchProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	opts, err := handling.ParseProductListOptions(r)
	if err != nil {
		prm.logger.Warn("Invalid query parameters", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("Invalid query parameters"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	prm.logger.Debug("Fetching products",
		gecho.Field("search", opts.SearchTerm),
		gecho.Field("sort", opts.SortBy),
		gecho.Field("page", opts.Page),
		gecho.Field("page_size", opts.PageSize),
	)

	products, total, err := prm.productService.ListProducts(ctx, opts)
	if err != nil {
		prm.logger.Error("Failed to fetch products", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("Unable to fetch products"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products": products,
			"pagination": map[string]any{
				"page":      opts.Page,
				"page_size": opts.PageSize,
				"total":     total,
			},
		}),
		gecho.Send(),
	)
}

// FetchProductByID handles GET /products/{id}
func (prm *ProductRoutesManager) FetchProductByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil || id == uuid.Nil {
		prm.logger.Warn("Invalid product ID format", gecho.Field("id", idStr))
		gecho.BadRequest(w,
			gecho.WithMessage("Invalid product ID"),
			gecho.Send(),
		)
		return
	}

	product, err := prm.productService.GetProductByID(ctx, id)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w,
				gecho.WithMessage("Product not found"),
				gecho.Send(),
			)
			return
		}

		prm.logger.Error("Failed to fetch product by ID", gecho.Field("id", id), gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("Unable to fetch product"),
			gecho.Send(),
		)
		return
	}

	// Related products share the category; a failure here degrades to an
	// empty list rather than failing the page
	related, err := prm.productService.GetRelatedProducts(ctx, product, 4)
	if err != nil {
		prm.logger.Warn("Failed to fetch related products", gecho.Field("id", id), gecho.Field("error", err))
		related = nil
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"product": product,
			"related": related,
		}),
		gecho.Send(),
	)
}

// FetchFeaturedProducts handles GET /products/featured for the homepage
func (prm *ProductRoutesManager) FetchFeaturedProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if val, err := strconv.Atoi(limitStr); err == nil && val > 0 {
			limit = val
		}
	}

	products, err := prm.productService.GetFeaturedProducts(ctx, limit)
	if err != nil {
		prm.logger.Error("Failed to fetch featured products", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("Unable to fetch featured products"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products": products,
			"count":    len(products),
		}),
		gecho.Send(),
	)
}

// FetchCategories handles GET /categories
func (prm *ProductRoutesManager) FetchCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := prm.productService.ListCategories(r.Context())
	if err != nil {
		prm.logger.Error("Failed to fetch categories", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("Unable to fetch categories"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"categories": categories,
		}),
		gecho.Send(),
	)
}
