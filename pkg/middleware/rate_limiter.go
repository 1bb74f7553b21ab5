package middleware

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	ginmiddleware "github.com/ulule/limiter/v3/drivers/middleware/gin"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"

	"roamio/pkg/logger"
)

// NewRateLimiter builds a Redis-backed limiter for one route group.
// rateStr uses the "<limit>-<period>" form, e.g. "60-1m" or "1000-1h".
// Returns a pass-through handler when the cache client is nil.
func NewRateLimiter(rdb *redis.Client, routeID, rateStr string) gin.HandlerFunc {
	if rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}

	rate, err := ParseCustomRate(rateStr)
	if err != nil {
		logger.Log.WithError(err).WithField("route", routeID).
			Warn("invalid rate string, rate limiting disabled for route")
		return func(c *gin.Context) { c.Next() }
	}

	store, err := redisstore.NewStoreWithOptions(rdb, limiter.StoreOptions{
		Prefix:          fmt.Sprintf("rate_limiter:%s", routeID),
		MaxRetry:        3,
		CleanUpInterval: rate.Period,
	})
	if err != nil {
		logger.Log.WithError(err).WithField("route", routeID).
			Warn("rate limiter store unavailable, rate limiting disabled for route")
		return func(c *gin.Context) { c.Next() }
	}

	return ginmiddleware.NewMiddleware(limiter.New(store, rate))
}

// ParseCustomRate allows formats like "10-2m", "30-20m", "5-1h", "20-10s".
func ParseCustomRate(rateStr string) (limiter.Rate, error) {
	parts := strings.Split(rateStr, "-")
	if len(parts) != 2 {
		return limiter.Rate{}, fmt.Errorf("invalid rate format: %s", rateStr)
	}

	limit, err := strconv.Atoi(parts[0])
	if err != nil {
		return limiter.Rate{}, fmt.Errorf("invalid limit: %s", parts[0])
	}

	period, err := time.ParseDuration(parts[1])
	if err != nil {
		return limiter.Rate{}, fmt.Errorf("invalid period: %s", parts[1])
	}

	return limiter.Rate{
		Formatted: rateStr,
		Period:    period,
		Limit:     int64(limit),
	}, nil
}
