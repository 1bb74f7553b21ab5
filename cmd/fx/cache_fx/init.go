package cache_fx

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"roamio/internal/infra"
	"roamio/pkg/logger"
)

var Module = fx.Provide(provideRedis)

// provideRedis may return nil; consumers treat a nil client as cache off.
func provideRedis() *redis.Client {
	client, err := infra.GetRedisClient(context.Background())
	if err != nil {
		logger.Log.WithError(err).Warn("running without Redis cache")
		return nil
	}
	return client
}
