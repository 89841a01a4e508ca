package middleware

import (
	"crypto/subtle"
	"net/http"
	"ouardatie_server/lib"

	"github.com/MonkyMars/gecho"
)

// SecurityHeaders sets conservative browser security headers on every
// response.
func (mw *Middleware) SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			w.Header().Set("Content-Security-Policy", "default-src 'self'")
			w.Header().Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")

			next.ServeHTTP(w, r)
		})
	}
}

// BodyLimit caps request body size at maxBytes.
func (mw *Middleware) BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// CSRFMiddleware verifies the double-submit CSRF token on mutating
// requests. Safe methods pass through.
func (mw *Middleware) CSRFMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			cookieToken, err := lib.GetCookieValue(lib.CSRFCookieName, r)
			if err != nil || cookieToken == "" {
				mw.logger.Warn("Missing CSRF cookie", gecho.Field("path", r.URL.Path))
				gecho.Forbidden(w,
					gecho.WithMessage("Missing CSRF token"),
					gecho.Send(),
				)
				return
			}

			headerToken := r.Header.Get("X-CSRF-Token")
			if subtle.ConstantTimeCompare([]byte(cookieToken), []byte(headerToken)) != 1 {
				mw.logger.Warn("CSRF token mismatch", gecho.Field("path", r.URL.Path))
				gecho.Forbidden(w,
					gecho.WithMessage("Invalid CSRF token"),
					gecho.Send(),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
