package domain

import (
	"github.com/yungbote/automate-backend/internal/domain/auth"
	"github.com/yungbote/automate-backend/internal/domain/chat"
	"github.com/yungbote/automate-backend/internal/domain/garage"
	"github.com/yungbote/automate-backend/internal/domain/notification"
	"github.com/yungbote/automate-backend/internal/domain/recommendation"
	"github.com/yungbote/automate-backend/internal/domain/user"
)

const (
	BookingStatusPending  = garage.BookingStatusPending
	BookingStatusApproved = garage.BookingStatusApproved
	DateLayout            = garage.DateLayout

	SubjectUser  = auth.SubjectUser
	SubjectAdmin = auth.SubjectAdmin
)

type User = user.User
type Admin = user.Admin
type UserToken = auth.UserToken
type Car = garage.Car
type Booking = garage.Booking
type Notification = notification.Notification
type RecommendationLog = recommendation.RecommendationLog
type ChatMessage = chat.ChatMessage

// Models lists every persisted type in migration order.
func Models() []any {
	return []any{
		&User{},
		&Admin{},
		&UserToken{},
		&Car{},
		&Booking{},
		&Notification{},
		&RecommendationLog{},
		&ChatMessage{},
	}
}
