// Package ratelimit throttles requests per client IP.
package ratelimit

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"codeberg.org/satirist/server/internal/errors"
	"codeberg.org/satirist/server/internal/logger"
)

const storePrefix = "satirist:limiter"

// creates per-IP rate limiting middleware.
// rate uses the limiter format, e.g. "30-M" for 30 requests per minute.
// a nil redis client keeps counters in process memory
func Middleware(rate string, client *redis.Client) (gin.HandlerFunc, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", rate, err)
	}

	var store limiter.Store

	if client != nil {
		store, err = sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: storePrefix})
		if err != nil {
			return nil, fmt.Errorf("failed to create redis limiter store: %w", err)
		}
	} else {
		store = memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: storePrefix})
	}

	instance := limiter.New(store, r)

	return mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			logger.Warn("rate limit reached", "ip", c.ClientIP(), "path", c.FullPath())
			errors.TooManyRequests(c, "too many requests, slow down")
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			// fail open when the store is unreachable
			logger.ErrorErr(err, "rate limiter store failed")
			c.Next()
		}),
	), nil
}
