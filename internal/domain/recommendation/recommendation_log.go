package recommendation

import (
	"time"

	"gorm.io/datatypes"
)

// RecommendationLog records one inference. CarID is nil for ad-hoc requests.
type RecommendationLog struct {
	ID             uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint           `gorm:"index;not null;column:user_id" json:"user_id"`
	CarID          *uint          `gorm:"index;column:car_id" json:"car_id,omitempty"`
	Input          datatypes.JSON `gorm:"column:input" json:"input"`
	Recommendation string         `gorm:"not null;column:recommendation" json:"recommendation"`
	CreatedAt      time.Time      `gorm:"not null;index" json:"created_at"`
}

func (RecommendationLog) TableName() string { return "recommendation_logs" }
