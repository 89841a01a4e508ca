package admin

import (
	"errors"
	"net/http"
	"ouardatie_server/lib"
	"ouardatie_server/structs"
	"ouardatie_server/structs/tables"
	"strconv"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ListOrders handles GET /admin/orders with optional status filtering.
func (arm *AdminRoutesManager) ListOrders(w http.ResponseWriter, r *http.Request) {
	var status *tables.OrderStatus
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		s := tables.OrderStatus(statusStr)
		status = &s
	}

	limit := 50
	offset := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if val, err := strconv.Atoi(limitStr); err == nil && val > 0 {
			limit = val
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if val, err := strconv.Atoi(offsetStr); err == nil && val >= 0 {
			offset = val
		}
	}

	orders, total, err := arm.orderService.GetAllOrders(r.Context(), status, limit, offset)
	if err != nil {
		arm.logger.Error("Failed to list orders", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to list orders"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"orders": orders,
			"total":  total,
			"limit":  limit,
			"offset": offset,
		}),
		gecho.Send(),
	)
}

// GetOrderDetails handles GET /admin/orders/{id}.
func (arm *AdminRoutesManager) GetOrderDetails(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid order ID"), gecho.Send())
		return
	}

	order, err := arm.orderService.GetOrderByID(r.Context(), id)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("Order not found"), gecho.Send())
			return
		}

		arm.logger.Error("Failed to fetch order", gecho.Field("error", err), gecho.Field("order_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to fetch order"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(order),
		gecho.Send(),
	)
}

// UpdateOrderStatus handles PUT /admin/orders/{id}/status. Transitions
// outside the allowed state machine are rejected.
func (arm *AdminRoutesManager) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid order ID"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.OrderStatusRequest](r)
	if err != nil {
		arm.logger.Warn("Invalid order status body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the status and try again"), gecho.WithData(err), gecho.Send())
		return
	}

	err = arm.orderService.UpdateOrderStatus(r.Context(), id, tables.OrderStatus(body.Status))
	if err != nil {
		switch {
		case lib.IsNotFound(err):
			gecho.NotFound(w, gecho.WithMessage("Order not found"), gecho.Send())
		case errors.Is(err, lib.ErrInvalidTransition):
			gecho.Conflict(w,
				gecho.WithMessage("Invalid status transition"),
				gecho.WithData(map[string]string{"error": err.Error()}),
				gecho.Send(),
			)
		default:
			arm.logger.Error("Failed to update order status",
				gecho.Field("error", err),
				gecho.Field("order_id", id),
				gecho.Field("status", body.Status),
			)
			gecho.InternalServerError(w, gecho.WithMessage("Unable to update order status"), gecho.Send())
		}
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Order status updated"),
		gecho.Send(),
	)
}
