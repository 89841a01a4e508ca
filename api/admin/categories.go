package admin

import (
	"net/http"
	"ouardatie_server/lib"
	"ouardatie_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (arm *AdminRoutesManager) CreateCategory(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CategoryRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract and validate category body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the category information and try again"), gecho.WithData(err), gecho.Send())
		return
	}

	category, err := arm.productService.CreateCategory(r.Context(), body)
	if err != nil {
		if lib.IsUniqueViolation(err) {
			gecho.Conflict(w, gecho.WithMessage("A category with this name already exists"), gecho.Send())
			return
		}

		arm.logger.Error("Failed to create category", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to create category. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Category created successfully"),
		gecho.WithData(category),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid category ID"), gecho.Send())
		return
	}

	if err := arm.productService.DeleteCategory(r.Context(), id); err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("Category not found"), gecho.Send())
			return
		}

		arm.logger.Error("Failed to delete category", gecho.Field("error", err), gecho.Field("category_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to delete category. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Category deleted successfully"),
		gecho.Send(),
	)
}
