package app

import (
	httpH "github.com/yungbote/automate-backend/internal/http/handlers"
	httpMW "github.com/yungbote/automate-backend/internal/http/middleware"
	"github.com/yungbote/automate-backend/internal/platform/logger"
	"github.com/yungbote/automate-backend/internal/realtime"
)

type Handlers struct {
	Auth         *httpMW.AuthMiddleware
	Health       *httpH.HealthHandler
	AuthHandler  *httpH.AuthHandler
	User         *httpH.UserHandler
	Car          *httpH.CarHandler
	Booking      *httpH.BookingHandler
	Notification *httpH.NotificationHandler
	Chat         *httpH.ChatHandler
	Admin        *httpH.AdminHandler
}

func wireHandlers(log *logger.Logger, s Services, hub *realtime.SSEHub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:         httpMW.NewAuthMiddleware(log, s.Auth),
		Health:       httpH.NewHealthHandler(),
		AuthHandler:  httpH.NewAuthHandler(s.Auth),
		User:         httpH.NewUserHandler(s.User),
		Car:          httpH.NewCarHandler(s.Car, s.Recommendation),
		Booking:      httpH.NewBookingHandler(s.Booking),
		Notification: httpH.NewNotificationHandler(log, s.Notification, hub),
		Chat:         httpH.NewChatHandler(s.Chat),
		Admin:        httpH.NewAdminHandler(s.Booking, s.Chart),
	}
}
