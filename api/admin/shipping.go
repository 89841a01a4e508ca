package admin

import (
	"net/http"
	"ouardatie_server/lib"
	"ouardatie_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (arm *AdminRoutesManager) CreateShippingOption(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.ShippingOptionRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract and validate shipping option body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the shipping option and try again"), gecho.WithData(err), gecho.Send())
		return
	}

	option, err := arm.shippingService.CreateShippingOption(r.Context(), body)
	if err != nil {
		if lib.IsUniqueViolation(err) {
			gecho.Conflict(w, gecho.WithMessage("A shipping option for this wilaya already exists"), gecho.Send())
			return
		}

		arm.logger.Error("Failed to create shipping option", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to create shipping option. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Shipping option created successfully"),
		gecho.WithData(option),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) UpdateShippingOption(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid shipping option ID"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ShippingOptionRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract and validate shipping option body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the shipping option and try again"), gecho.WithData(err), gecho.Send())
		return
	}

	option, err := arm.shippingService.UpdateShippingOption(r.Context(), id, body)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("Shipping option not found"), gecho.Send())
			return
		}

		arm.logger.Error("Failed to update shipping option", gecho.Field("error", err), gecho.Field("option_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update shipping option. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Shipping option updated successfully"),
		gecho.WithData(option),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) DeleteShippingOption(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid shipping option ID"), gecho.Send())
		return
	}

	if err := arm.shippingService.DeleteShippingOption(r.Context(), id); err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("Shipping option not found"), gecho.Send())
			return
		}

		arm.logger.Error("Failed to delete shipping option", gecho.Field("error", err), gecho.Field("option_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to delete shipping option. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Shipping option deleted successfully"),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) CreateCommune(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CommuneRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract and validate commune body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the commune and try again"), gecho.WithData(err), gecho.Send())
		return
	}

	commune, err := arm.shippingService.CreateCommune(r.Context(), body)
	if err != nil {
		if lib.IsUniqueViolation(err) {
			gecho.Conflict(w, gecho.WithMessage("This commune already exists"), gecho.Send())
			return
		}

		arm.logger.Error("Failed to create commune", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to create commune. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Commune created successfully"),
		gecho.WithData(commune),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) DeleteCommune(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid commune ID"), gecho.Send())
		return
	}

	if err := arm.shippingService.DeleteCommune(r.Context(), id); err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("Commune not found"), gecho.Send())
			return
		}

		arm.logger.Error("Failed to delete commune", gecho.Field("error", err), gecho.Field("commune_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to delete commune. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Commune deleted successfully"),
		gecho.Send(),
	)
}
