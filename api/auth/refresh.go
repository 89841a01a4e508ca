package auth

import (
	"errors"
	"net/http"
	"ouardatie_server/lib"

	"github.com/MonkyMars/gecho"
)

// HandleRefresh rotates the access and refresh tokens using the
// refresh cookie.
func (arm *AuthRoutesManager) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	refreshToken, err := lib.GetCookieValue(lib.RefreshCookieName, r)
	if err != nil || refreshToken == "" {
		gecho.Unauthorized(w,
			gecho.WithMessage("No refresh token found"),
			gecho.Send(),
		)
		return
	}

	response, err := arm.authService.RefreshAccessToken(refreshToken)
	if err != nil {
		if errors.Is(err, lib.ErrInvalidToken) || errors.Is(err, lib.ErrExpiredToken) {
			lib.ClearCookie(lib.AccessCookieName, w)
			lib.ClearCookie(lib.RefreshCookieName, w)
			gecho.Unauthorized(w,
				gecho.WithMessage("Session expired. Please log in again"),
				gecho.Send(),
			)
			return
		}

		arm.logger.Error("Failed to refresh tokens", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("Unable to refresh session"),
			gecho.Send(),
		)
		return
	}

	lib.SetCookie(lib.AccessCookieName, response.AccessToken, arm.authService.GetAccessTokenExpiration(), w)
	lib.SetCookie(lib.RefreshCookieName, response.RefreshToken, arm.authService.GetRefreshTokenExpiration(), w)

	gecho.Success(w,
		gecho.WithMessage("Session refreshed"),
		gecho.WithData(response.User),
		gecho.Send(),
	)
}
