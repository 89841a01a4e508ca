package admin

import (
	"net/http"
	"strconv"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ListUsers handles GET /admin/users for the customer overview.
func (arm *AdminRoutesManager) ListUsers(w http.ResponseWriter, r *http.Request) {
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

	users, total, err := arm.authService.ListProfiles(r.Context(), limit, offset)
	if err != nil {
		arm.logger.Error("Failed to list users", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to list users"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"users":  users,
			"total":  total,
			"limit":  limit,
			"offset": offset,
		}),
		gecho.Send(),
	)
}

// RecomputeUserStats rebuilds a customer's purchase stats from their
// orders, for when the denormalized counters look off.
func (arm *AdminRoutesManager) RecomputeUserStats(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid user ID"), gecho.Send())
		return
	}

	if err := arm.orderService.RecomputeProfileStats(r.Context(), id); err != nil {
		arm.logger.Error("Failed to recompute user stats", gecho.Field("error", err), gecho.Field("user_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to recompute stats"), gecho.Send())
		return
	}

	if err := arm.authService.InvalidateProfileCache(id); err != nil {
		arm.logger.Warn("Failed to invalidate profile cache after recompute", gecho.Field("error", err), gecho.Field("user_id", id))
	}

	gecho.Success(w,
		gecho.WithMessage("Purchase stats recomputed"),
		gecho.Send(),
	)
}
