package trip_fx

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"roamio/internal/repositories"
	"roamio/internal/services"
	"roamio/pkg/utils"
)

var Module = fx.Provide(provideTripRepo, provideTripService)

func provideTripRepo(db *gorm.DB) repositories.TripRepository {
	return repositories.NewTripRepository(db)
}

func provideTripService(
	planner utils.PlannerClientInterface,
	router services.RouteService,
	tripRepo repositories.TripRepository,
	cache *redis.Client,
	analytics services.AnalyticsServiceInterface,
) services.TripServiceInterface {

	return services.NewTripService(planner, router, tripRepo, cache, analytics)
}
