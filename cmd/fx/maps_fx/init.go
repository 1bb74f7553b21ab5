package maps_fx

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"roamio/internal/services"
)

var Module = fx.Provide(provideMatrixClient, provideRouteService, providePlacesService)

func provideMatrixClient() services.DistanceMatrixService {
	return services.NewGoogleMatrixClient(services.NewInMemoryPairCache())
}

func provideRouteService(matrix services.DistanceMatrixService) services.RouteService {
	return services.NewRouteService(matrix)
}

func providePlacesService(cache *redis.Client) services.PlacesServiceInterface {
	return services.NewPlacesService(cache)
}
