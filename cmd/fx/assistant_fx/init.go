package assistant_fx

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"roamio/internal/services"
	"roamio/pkg/utils"
)

var Module = fx.Provide(provideAssistantService)

func provideAssistantService(
	planner utils.PlannerClientInterface,
	cache *redis.Client,
	analytics services.AnalyticsServiceInterface,
) services.AssistantServiceInterface {

	return services.NewAssistantService(planner, cache, analytics)
}
