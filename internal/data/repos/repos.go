package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/automate-backend/internal/data/repos/auth"
	"github.com/yungbote/automate-backend/internal/data/repos/chat"
	"github.com/yungbote/automate-backend/internal/data/repos/garage"
	"github.com/yungbote/automate-backend/internal/data/repos/notification"
	"github.com/yungbote/automate-backend/internal/data/repos/recommendation"
	"github.com/yungbote/automate-backend/internal/data/repos/user"
	"github.com/yungbote/automate-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo
type AdminRepo = user.AdminRepo
type UserTokenRepo = auth.UserTokenRepo
type CarRepo = garage.CarRepo
type BookingRepo = garage.BookingRepo
type CountByKey = garage.CountByKey
type NotificationRepo = notification.NotificationRepo
type RecommendationLogRepo = recommendation.RecommendationLogRepo
type ChatMessageRepo = chat.ChatMessageRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
func NewAdminRepo(db *gorm.DB, baseLog *logger.Logger) AdminRepo {
	return user.NewAdminRepo(db, baseLog)
}
func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, baseLog)
}
func NewCarRepo(db *gorm.DB, baseLog *logger.Logger) CarRepo { return garage.NewCarRepo(db, baseLog) }
func NewBookingRepo(db *gorm.DB, baseLog *logger.Logger) BookingRepo {
	return garage.NewBookingRepo(db, baseLog)
}
func NewNotificationRepo(db *gorm.DB, baseLog *logger.Logger) NotificationRepo {
	return notification.NewNotificationRepo(db, baseLog)
}
func NewRecommendationLogRepo(db *gorm.DB, baseLog *logger.Logger) RecommendationLogRepo {
	return recommendation.NewRecommendationLogRepo(db, baseLog)
}
func NewChatMessageRepo(db *gorm.DB, baseLog *logger.Logger) ChatMessageRepo {
	return chat.NewChatMessageRepo(db, baseLog)
}
