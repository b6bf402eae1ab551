package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/stonedesk/stonedesk/pkg/configuration"
	"github.com/stonedesk/stonedesk/pkg/httpapi"
)

// RateLimitConfig controls a token-bucket limiter applied per key.
type RateLimitConfig struct {
	RequestsPerPeriod int
	Period            time.Duration
	Store             limiter.Store
	KeyFunc           func(*http.Request) string
}

func NewMemoryStore() limiter.Store {
	return memory.NewStore()
}

// EndpointKeyFunc buckets all callers of one endpoint together. The client IP
// is appended so a single caller cannot starve the endpoint for everyone.
func EndpointKeyFunc(endpoint string) func(*http.Request) string {
	conf := configuration.Use()
	return func(r *http.Request) string {
		return endpoint + ":" + getRealIP(r, conf)
	}
}

func ipKeyFunc(r *http.Request) string {
	conf := configuration.Use()
	return getRealIP(r, conf)
}

// RateLimit rejects requests over the configured rate with 429 and standard
// X-RateLimit headers.
func RateLimit(cfg RateLimitConfig) mux.MiddlewareFunc {
	if cfg.Period == 0 {
		cfg.Period = time.Second
	}
	if cfg.Store == nil {
		cfg.Store = NewMemoryStore()
	}
	keyFunc := cfg.KeyFunc
	if keyFunc == nil {
		keyFunc = ipKeyFunc
	}

	instance := limiter.New(cfg.Store, limiter.Rate{
		Period: cfg.Period,
		Limit:  int64(cfg.RequestsPerPeriod),
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limiterCtx, err := instance.Get(r.Context(), keyFunc(r))
			if err != nil {
				httpapi.WriteError(w, http.StatusInternalServerError, "RATE_LIMIT_FAILURE", "rate limiter unavailable", nil)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(limiterCtx.Limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(limiterCtx.Remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(limiterCtx.Reset, 10))

			if limiterCtx.Reached {
				httpapi.WriteError(w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "too many requests", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
