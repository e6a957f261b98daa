package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/plexdi/studio/pkg/configuration"
	"github.com/plexdi/studio/pkg/constants"
	"github.com/plexdi/studio/pkg/httpapi"
)

type RateLimitConfig struct {
	RequestsPerPeriod int64
	Period            time.Duration
	Store             limiter.Store
	// KeyFunc derives the limiter bucket from the request. Defaults to the
	// client IP resolved through the configured real-IP header.
	KeyFunc func(r *http.Request) string
}

func NewMemoryStore() limiter.Store {
	return memory.NewStore()
}

// Provide injects a static value into the request context under the given key.
func Provide(key constants.ContextKey, value any) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), key, value)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RateLimit caps the number of requests per key within a rolling period.
// Exceeding requests get a 429 with a Retry-After header.
func RateLimit(cfg RateLimitConfig) mux.MiddlewareFunc {
	conf := configuration.Use()
	if cfg.Period == 0 {
		cfg.Period = time.Minute
	}
	if cfg.Store == nil {
		cfg.Store = NewMemoryStore()
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(r *http.Request) string {
			return getRealIP(r, conf)
		}
	}
	instance := limiter.New(cfg.Store, limiter.Rate{
		Period: cfg.Period,
		Limit:  cfg.RequestsPerPeriod,
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limiterCtx, err := instance.Get(r.Context(), cfg.KeyFunc(r))
			if err != nil {
				httpapi.WriteError(r.Context(), w, http.StatusInternalServerError, "rate limiter failure", "RATE_LIMITER_ERROR")
				return
			}
			if limiterCtx.Reached {
				w.Header().Set("Retry-After", time.Unix(limiterCtx.Reset, 0).UTC().Format(http.TimeFormat))
				httpapi.WriteError(r.Context(), w, http.StatusTooManyRequests, "too many requests", "RATE_LIMITED")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
