package middleware

import (
	"context"
	"net/http"
	"ouardatie_server/lib"
	"ouardatie_server/structs"
	"time"

	"github.com/MonkyMars/gecho"
)

type contextKey string

const (
	// ClaimsContextKey is where authenticated token claims live in the
	// request context.
	ClaimsContextKey contextKey = "claims"
)

// UserAuthMiddleware requires a valid, non-blacklisted access token and
// stores its claims in the request context.
func (mw *Middleware) UserAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := lib.ExtractClaims(r, mw.cfg.Auth.AccessTokenSecret)
		if err != nil {
			mw.logger.Debug("Failed to extract claims", gecho.Field("error", err))
			gecho.Unauthorized(w,
				gecho.WithMessage("Authentication required"),
				gecho.Send(),
			)
			return
		}

		if time.Now().After(claims.Exp) {
			gecho.Unauthorized(w,
				gecho.WithMessage("Access token has expired"),
				gecho.Send(),
			)
			return
		}

		blacklisted, err := mw.cacheService.IsTokenBlacklisted(claims.Jti)
		if err != nil {
			// Fail open on cache errors, the token itself already verified
			mw.logger.Warn("Failed to check token blacklist", gecho.Field("error", err), gecho.Field("jti", claims.Jti))
		} else if blacklisted {
			gecho.Unauthorized(w,
				gecho.WithMessage("Token has been revoked"),
				gecho.Send(),
			)
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminAuthMiddleware must run after UserAuthMiddleware and rejects
// anyone without the admin role.
func (mw *Middleware) AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaimsFromContext(r.Context())
		if claims == nil {
			gecho.Unauthorized(w,
				gecho.WithMessage("Authentication required"),
				gecho.Send(),
			)
			return
		}

		if claims.Role != "admin" {
			mw.logger.Warn("Non-admin attempted to access admin route",
				gecho.Field("user_id", claims.Sub),
				gecho.Field("path", r.URL.Path),
			)
			gecho.Forbidden(w,
				gecho.WithMessage("Admin access required"),
				gecho.Send(),
			)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetClaimsFromContext returns the claims set by UserAuthMiddleware, or
// nil when the request was not authenticated.
func GetClaimsFromContext(ctx context.Context) *structs.AuthClaims {
	claims, ok := ctx.Value(ClaimsContextKey).(*structs.AuthClaims)
	if !ok {
		return nil
	}
	return claims
}
