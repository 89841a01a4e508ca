package auth

import (
	"net/http"
	"ouardatie_server/api/middleware"
	"ouardatie_server/lib"

	"github.com/MonkyMars/gecho"
)

// HandleMe returns the authenticated customer's profile, including the
// purchase stats shown on the account page.
func (arm *AuthRoutesManager) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		gecho.Unauthorized(w,
			gecho.WithMessage("Authentication required"),
			gecho.Send(),
		)
		return
	}

	profile, err := arm.authService.GetProfileByID(claims.Sub)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w,
				gecho.WithMessage("Profile not found"),
				gecho.Send(),
			)
			return
		}

		arm.logger.Error("Failed to fetch profile", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
		gecho.InternalServerError(w,
			gecho.WithMessage("Unable to fetch profile"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(profile),
		gecho.Send(),
	)
}
