package auth

import (
	"time"
)

const (
	SubjectUser  = "user"
	SubjectAdmin = "admin"
)

// UserToken is an issued access/refresh pair. SubjectType tells whether
// SubjectID points into users or admins.
type UserToken struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SubjectID    uint      `gorm:"index:idx_token_subject;not null;column:subject_id" json:"subject_id"`
	SubjectType  string    `gorm:"index:idx_token_subject;not null;column:subject_type" json:"subject_type"`
	AccessToken  string    `gorm:"uniqueIndex;not null;column:access_token" json:"access_token"`
	RefreshToken string    `gorm:"uniqueIndex;not null;column:refresh_token" json:"refresh_token"`
	ExpiresAt    time.Time `gorm:"column:expires_at" json:"expires_at"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (UserToken) TableName() string { return "user_tokens" }
