package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/automate-backend/internal/modules/faq"
	"github.com/yungbote/automate-backend/internal/modules/maintenance"
	"github.com/yungbote/automate-backend/internal/observability"
	"github.com/yungbote/automate-backend/internal/platform/logger"
	"github.com/yungbote/automate-backend/internal/realtime/bus"
	"github.com/yungbote/automate-backend/internal/services"
)

type Services struct {
	Auth           services.AuthService
	User           services.UserService
	Car            services.CarService
	Recommendation services.RecommendationService
	Notification   services.NotificationService
	Booking        services.BookingService
	Chat           services.ChatService
	Reminder       services.ReminderService
	Chart          services.ChartService
}

func wireServices(
	db *gorm.DB,
	log *logger.Logger,
	cfg *Config,
	r Repos,
	c Clients,
	eventBus bus.Bus,
	model *maintenance.ModelBundle,
	corpus []faq.Entry,
	metrics *observability.Metrics,
) Services {
	log.Info("Wiring services...")

	notifier := services.NewBookingNotifier(&services.BusEmitter{Bus: eventBus, Log: log})

	authService := services.NewAuthService(db, log, r.User, r.Admin, r.UserToken, cfg.Auth.JWTSecretKey, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	userService := services.NewUserService(log, r.User, r.Admin)
	carService := services.NewCarService(log, r.Car, nil)
	recommendationService := services.NewRecommendationService(log, model, carService, r.RecommendationLog, metrics)
	notificationService := services.NewNotificationService(log, r.Notification, r.User, notifier, c.Mailer, c.SMS, metrics)
	bookingService := services.NewBookingService(log, r.Booking, carService, notificationService, notifier, metrics, nil)
	chatService := services.NewChatService(log, corpus, r.ChatMessage, metrics)
	reminderService := services.NewReminderService(log, r.Booking, notificationService, metrics, nil)
	chartService := services.NewChartService(log, bookingService, cfg.Charts.FontPath)

	return Services{
		Auth:           authService,
		User:           userService,
		Car:            carService,
		Recommendation: recommendationService,
		Notification:   notificationService,
		Booking:        bookingService,
		Chat:           chatService,
		Reminder:       reminderService,
		Chart:          chartService,
	}
}
