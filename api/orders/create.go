package orders

import (
	"errors"
	"net/http"
	"ouardatie_server/lib"
	"ouardatie_server/services"
	"ouardatie_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// Checkout handles POST /orders. It converts the caller's cart into an
// order, priced server-side against current product data.
func (orm *OrderRoutesManager) Checkout(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CheckoutRequest](r)
	if err != nil {
		orm.logger.Warn("Invalid checkout body", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("Please check the order details and try again"),
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

	cart := orm.cartService.GetCart(token)

	// Link the order to an account when the caller is logged in. A
	// guest checkout is perfectly valid.
	var userID *uuid.UUID
	if claims, err := lib.ExtractClaims(r, orm.cfg.Auth.AccessTokenSecret); err == nil {
		userID = &claims.Sub
	}

	order, err := orm.orderService.CreateOrderFromCheckout(r.Context(), cart, body, userID)
	if err != nil {
		switch {
		case errors.Is(err, lib.ErrEmptyOrder):
			gecho.BadRequest(w,
				gecho.WithMessage("Cart is empty"),
				gecho.Send(),
			)
		case errors.Is(err, services.ErrVariantOutOfStock), lib.IsNotFound(err):
			gecho.BadRequest(w,
				gecho.WithMessage("One or more items are no longer available"),
				gecho.WithData(map[string]string{"error": err.Error()}),
				gecho.Send(),
			)
		default:
			orm.logger.Error("Failed to create order", gecho.Field("error", err))
			gecho.InternalServerError(w,
				gecho.WithMessage("Unable to place order. Please try again"),
				gecho.Send(),
			)
		}
		return
	}

	orm.cartService.ClearCart(token)
	lib.ClearCookie(lib.CartCookieName, w)

	gecho.Success(w,
		gecho.WithMessage("Order placed successfully"),
		gecho.WithData(map[string]any{
			"order_id":     order.ID,
			"order_number": order.OrderNumber,
			"status":       order.Status,
			"total_amount": order.TotalAmount,
		}),
		gecho.Send(),
	)
}
