package orders

import (
	"net/http"
	"ouardatie_server/lib"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// TrackOrder handles GET /orders/track/{orderNumber}. It is public, so
// the response omits customer contact details.
func (orm *OrderRoutesManager) TrackOrder(w http.ResponseWriter, r *http.Request) {
	orderNumber := chi.URLParam(r, "orderNumber")
	if orderNumber == "" {
		gecho.BadRequest(w,
			gecho.WithMessage("Order number is required"),
			gecho.Send(),
		)
		return
	}

	order, err := orm.orderService.GetOrderByOrderNumber(r.Context(), orderNumber)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w,
				gecho.WithMessage("Order not found"),
				gecho.Send(),
			)
			return
		}

		orm.logger.Error("Failed to track order", gecho.Field("error", err), gecho.Field("order_number", orderNumber))
		gecho.InternalServerError(w,
			gecho.WithMessage("Unable to look up order"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"order_number":  order.OrderNumber,
			"status":        order.Status,
			"wilaya":        order.Wilaya,
			"commune":       order.Commune,
			"shipping_type": order.ShippingType,
			"shipping_cost": order.ShippingCost,
			"total_amount":  order.TotalAmount,
			"created_at":    order.CreatedAt,
			"items":         order.Items,
		}),
		gecho.Send(),
	)
}
