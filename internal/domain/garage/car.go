package garage

import (
	"time"

	"github.com/yungbote/automate-backend/internal/domain/user"
)

var (
	EngineTypes       = []string{"Gasoline", "Diesel", "Hybrid", "Electric"}
	DrivingConditions = []string{"Fair", "Good", "Excellent"}
	MinModelYear      = 1900
)

type Car struct {
	ID               uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID           uint       `gorm:"index;not null;column:user_id" json:"user_id"`
	User             *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Make             string     `gorm:"not null;column:make" json:"make"`
	Model            string     `gorm:"not null;column:model" json:"model"`
	Year             int        `gorm:"not null;column:year" json:"year"`
	Mileage          int        `gorm:"not null;column:mileage" json:"mileage"`
	EngineType       string     `gorm:"not null;column:engine_type" json:"engine_type"`
	DrivingCondition string     `gorm:"not null;column:driving_condition" json:"driving_condition"`
	CreatedAt        time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"not null" json:"updated_at"`
}

func (Car) TableName() string { return "cars" }

// Features is the mapping handed to the maintenance recommender.
func (c *Car) Features() map[string]any {
	return map[string]any{
		"make":              c.Make,
		"model":             c.Model,
		"year":              c.Year,
		"mileage":           c.Mileage,
		"engine_type":       c.EngineType,
		"driving_condition": c.DrivingCondition,
	}
}
