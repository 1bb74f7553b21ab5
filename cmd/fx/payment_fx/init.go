package payment_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"roamio/internal/services"
)

var Module = fx.Provide(provideGatewayClient, providePaymentService)

func provideGatewayClient() services.GatewayClient {
	return services.NewRazorpayClient()
}

func providePaymentService(db *gorm.DB, gateway services.GatewayClient, analytics services.AnalyticsServiceInterface) services.PaymentServiceInterface {
	return services.NewPaymentService(db, gateway, analytics)
}
