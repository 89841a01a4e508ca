package cart

import (
	"errors"
	"net/http"
	"ouardatie_server/lib"
	"ouardatie_server/services"
	"ouardatie_server/structs"
	"time"

	"github.com/MonkyMars/gecho"
)

// cartToken returns the caller's cart token, minting one and setting
// the cookie when the request carries none.
func (crm *CartRoutesManager) cartToken(w http.ResponseWriter, r *http.Request) (string, error) {
	token, err := lib.GetCookieValue(lib.CartCookieName, r)
	if err == nil && token != "" {
		return token, nil
	}

	token, err = crm.cartService.NewCartToken()
	if err != nil {
		return "", err
	}

	lib.SetCookie(lib.CartCookieName, token, time.Now().Add(crm.cfg.Cart.TTL), w)
	return token, nil
}

// FetchCart handles GET /cart
func (crm *CartRoutesManager) FetchCart(w http.ResponseWriter, r *http.Request) {
	token, err := crm.cartToken(w, r)
	if err != nil {
		crm.logger.Error("Failed to mint cart token", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("Unable to fetch cart"),
			gecho.Send(),
		)
		return
	}

	cart := crm.cartService.GetCart(token)

	gecho.Success(w,
		gecho.WithData(cart),
		gecho.Send(),
	)
}

// AddItem handles POST /cart/items
func (crm *CartRoutesManager) AddItem(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CartItemRequest](r)
	if err != nil {
		crm.logger.Warn("Invalid cart item body", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("Please check the item details and try again"),
			gecho.WithData(err),
			gecho.Send(),
		)
		return
	}

	token, err := crm.cartToken(w, r)
	if err != nil {
		crm.logger.Error("Failed to mint cart token", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("Unable to update cart"),
			gecho.Send(),
		)
		return
	}

	cart, err := crm.cartService.AddItem(r.Context(), token, body)
	if err != nil {
		crm.handleCartError(w, err, "Failed to add item to cart")
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Item added to cart"),
		gecho.WithData(cart),
		gecho.Send(),
	)
}

// UpdateQuantity handles PUT /cart/items
func (crm *CartRoutesManager) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CartItemRequest](r)
	if err != nil {
		crm.logger.Warn("Invalid cart item body", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("Please check the item details and try again"),
			gecho.WithData(err),
			gecho.Send(),
		)
		return
	}

	token, err := lib.GetCookieValue(lib.CartCookieName, r)
	if err != nil || token == "" {
		gecho.BadRequest(w,
			gecho.WithMessage("No cart found"),
			gecho.Send(),
		)
		return
	}

	cart, err := crm.cartService.UpdateQuantity(r.Context(), token, body)
	if err != nil {
		crm.handleCartError(w, err, "Failed to update cart quantity")
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Cart updated"),
		gecho.WithData(cart),
		gecho.Send(),
	)
}

// RemoveItem handles DELETE /cart/items
func (crm *CartRoutesManager) RemoveItem(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CartLineKey](r)
	if err != nil {
		crm.logger.Warn("Invalid cart line key", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("Please check the item details and try again"),
			gecho.WithData(err),
			gecho.Send(),
		)
		return
	}

	token, err := lib.GetCookieValue(lib.CartCookieName, r)
	if err != nil || token == "" {
		gecho.BadRequest(w,
			gecho.WithMessage("No cart found"),
			gecho.Send(),
		)
		return
	}

	cart, err := crm.cartService.RemoveItem(token, body)
	if err != nil {
		crm.handleCartError(w, err, "Failed to remove item from cart")
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Item removed from cart"),
		gecho.WithData(cart),
		gecho.Send(),
	)
}

// ClearCart handles DELETE /cart
func (crm *CartRoutesManager) ClearCart(w http.ResponseWriter, r *http.Request) {
	token, err := lib.GetCookieValue(lib.CartCookieName, r)
	if err == nil && token != "" {
		crm.cartService.ClearCart(token)
	}

	gecho.Success(w,
		gecho.WithMessage("Cart cleared"),
		gecho.Send(),
	)
}

func (crm *CartRoutesManager) handleCartError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case lib.IsNotFound(err):
		gecho.NotFound(w,
			gecho.WithMessage("Product not found"),
			gecho.Send(),
		)
	case errors.Is(err, services.ErrVariantOutOfStock):
		gecho.BadRequest(w,
			gecho.WithMessage("This variant is out of stock"),
			gecho.Send(),
		)
	case errors.Is(err, services.ErrCartLineNotFound):
		gecho.NotFound(w,
			gecho.WithMessage("Item not found in cart"),
			gecho.Send(),
		)
	default:
		crm.logger.Error(logMsg, gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("Unable to update cart"),
			gecho.Send(),
		)
	}
}
