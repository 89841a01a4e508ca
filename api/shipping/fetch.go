package shipping

import (
	"net/http"
	"ouardatie_server/lib"
	"ouardatie_server/structs"
	"ouardatie_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

// FetchShippingOptions handles GET /shipping/options and returns the
// per-wilaya price list.
func (srm *ShippingRoutesManager) FetchShippingOptions(w http.ResponseWriter, r *http.Request) {
	options, err := srm.shippingService.GetShippingOptions(r.Context())
	if err != nil {
		srm.logger.Error("Failed to fetch shipping options", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("Unable to fetch shipping options"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"options": options,
		}),
		gecho.Send(),
	)
}

// FetchCommunes handles GET /shipping/communes?wilaya=... for the
// checkout commune dropdown.
func (srm *ShippingRoutesManager) FetchCommunes(w http.ResponseWriter, r *http.Request) {
	wilaya := r.URL.Query().Get("wilaya")
	if wilaya == "" {
		gecho.BadRequest(w,
			gecho.WithMessage("Wilaya is required"),
			gecho.Send(),
		)
		return
	}

	communes, err := srm.shippingService.GetCommunesForWilaya(r.Context(), wilaya)
	if err != nil {
		srm.logger.Error("Failed to fetch communes", gecho.Field("error", err), gecho.Field("wilaya", wilaya))
		gecho.InternalServerError(w,
			gecho.WithMessage("Unable to fetch communes"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"communes": communes,
			"count":    len(communes),
		}),
		gecho.Send(),
	)
}

// QuoteCheckout handles POST /checkout/quote. It prices the caller's
// cart against a wilaya and shipping type without placing an order.
func (srm *ShippingRoutesManager) QuoteCheckout(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.QuoteRequest](r)
	if err != nil {
		srm.logger.Warn("Invalid quote request body", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("Please check the shipping details and try again"),
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

	cart := srm.cartService.GetCart(token)
	if len(cart.Items) == 0 {
		gecho.BadRequest(w,
			gecho.WithMessage("Cart is empty"),
			gecho.Send(),
		)
		return
	}

	quote, err := srm.shippingService.QuoteCart(r.Context(), cart, body.Wilaya, tables.ShippingType(body.ShippingType))
	if err != nil {
		srm.logger.Error("Failed to quote checkout", gecho.Field("error", err), gecho.Field("wilaya", body.Wilaya))
		gecho.InternalServerError(w,
			gecho.WithMessage("Unable to calculate shipping"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(quote),
		gecho.Send(),
	)
}
