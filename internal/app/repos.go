package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/automate-backend/internal/data/repos"
	"github.com/yungbote/automate-backend/internal/platform/logger"
)

type Repos struct {
	User              repos.UserRepo
	Admin             repos.AdminRepo
	UserToken         repos.UserTokenRepo
	Car               repos.CarRepo
	Booking           repos.BookingRepo
	Notification      repos.NotificationRepo
	RecommendationLog repos.RecommendationLogRepo
	ChatMessage       repos.ChatMessageRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:              repos.NewUserRepo(db, log),
		Admin:             repos.NewAdminRepo(db, log),
		UserToken:         repos.NewUserTokenRepo(db, log),
		Car:               repos.NewCarRepo(db, log),
		Booking:           repos.NewBookingRepo(db, log),
		Notification:      repos.NewNotificationRepo(db, log),
		RecommendationLog: repos.NewRecommendationLogRepo(db, log),
		ChatMessage:       repos.NewChatMessageRepo(db, log),
	}
}
