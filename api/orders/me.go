package orders

import (
	"net/http"
	"ouardatie_server/api/middleware"

	"github.com/MonkyMars/gecho"
)

// GetMyOrders returns the order history of the authenticated customer.
func (orm *OrderRoutesManager) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		gecho.Unauthorized(w,
			gecho.WithMessage("Authentication required"),
			gecho.Send(),
		)
		return
	}

	orders, err := orm.orderService.GetOrdersByUserID(r.Context(), claims.Sub)
	if err != nil {
		orm.logger.Error("Failed to fetch user orders", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
		gecho.InternalServerError(w,
			gecho.WithMessage("Unable to fetch orders"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"orders": orders,
			"count":  len(orders),
		}),
		gecho.Send(),
	)
}
