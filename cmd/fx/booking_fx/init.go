package booking_fx

import (
	"log"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"roamio/internal/repositories"
	"roamio/internal/services"
)

var Module = fx.Provide(provideBookingRepo, provideMailService, provideBookingService)

func provideBookingRepo(db *gorm.DB) repositories.BookingRepository {
	return repositories.NewBookingRepository(db)
}

func provideMailService() services.IMailService {
	mail, err := services.NewSMTPMailService(services.SMTPConfigFromEnv())
	if err != nil {
		log.Fatalf("Failed to create mail service: %v", err)
	}
	return mail
}

func provideBookingService(
	bookingRepo repositories.BookingRepository,
	tripRepo repositories.TripRepository,
	accountRepo repositories.AccountRepository,
	mail services.IMailService,
	analytics services.AnalyticsServiceInterface,
) services.BookingServiceInterface {

	return services.NewBookingService(bookingRepo, tripRepo, accountRepo, mail, analytics)
}
