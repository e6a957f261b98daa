package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/plexdi/studio/pkg/composables"
	"github.com/plexdi/studio/pkg/configuration"
)

// RequestParams attaches per-request metadata to the context so handlers
// can reach the client IP and start time without touching the raw request.
func RequestParams() mux.MiddlewareFunc {
	conf := configuration.Use()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			params := &composables.Params{
				IP:           getRealIP(r, conf),
				UserAgent:    r.UserAgent(),
				Writer:       w,
				Request:      r,
				RequestStart: time.Now(),
			}
			next.ServeHTTP(w, r.WithContext(composables.WithParams(r.Context(), params)))
		})
	}
}

// Cors restricts cross-origin requests to the configured origins.
func Cors(allowedOrigins []string) mux.MiddlewareFunc {
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-Id", "X-Cache-Revision"},
		AllowCredentials: true,
	})
	return c.Handler
}
