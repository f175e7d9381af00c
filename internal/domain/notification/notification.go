package notification

import (
	"time"

	"github.com/yungbote/automate-backend/internal/domain/user"
)

type Notification struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint       `gorm:"index;not null;column:user_id" json:"user_id"`
	User      *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Message   string     `gorm:"not null;column:message" json:"message"`
	CreatedAt time.Time  `gorm:"not null;index" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
