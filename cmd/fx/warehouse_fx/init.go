package warehouse_fx

import (
	"context"

	"cloud.google.com/go/bigquery"
	"go.uber.org/fx"

	"roamio/internal/infra"
	"roamio/internal/services"
)

var Module = fx.Provide(provideBigQuery, provideProducer, provideAnalyticsService)

func provideBigQuery() *bigquery.Client {
	return infra.InitBigQuery(context.Background())
}

func provideProducer() *infra.EventProducer {
	return infra.NewEventProducer()
}

func provideAnalyticsService(client *bigquery.Client, producer *infra.EventProducer) services.AnalyticsServiceInterface {
	return services.NewAnalyticsService(client, producer)
}
