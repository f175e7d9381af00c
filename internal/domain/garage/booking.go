package garage

import (
	"time"

	"github.com/yungbote/automate-backend/internal/domain/user"
)

const (
	BookingStatusPending  = "Pending"
	BookingStatusApproved = "Approved"

	// DateLayout is the wire and storage format of appointment dates.
	DateLayout = "2006-01-02"
)

var (
	ServiceTypes = []string{"Oil Change", "Tire Rotation", "Battery Check", "Brake Inspection"}
	TimeSlots    = []string{"Morning", "Afternoon", "Evening"}
)

type Booking struct {
	ID              uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint       `gorm:"index;not null;column:user_id" json:"user_id"`
	User            *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	CarID           uint       `gorm:"index;not null;column:car_id" json:"car_id"`
	Car             *Car       `gorm:"constraint:OnDelete:CASCADE;foreignKey:CarID;references:ID" json:"car,omitempty"`
	ServiceType     string     `gorm:"not null;index;column:service_type" json:"service_type"`
	AppointmentDate string     `gorm:"not null;index;column:appointment_date" json:"appointment_date"`
	TimeSlot        string     `gorm:"not null;column:time_slot" json:"time_slot"`
	Status          string     `gorm:"not null;default:'Pending';index;column:status" json:"status"`
	RemindedAt      *time.Time `gorm:"column:reminded_at" json:"reminded_at,omitempty"`
	CreatedAt       time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null" json:"updated_at"`
}

func (Booking) TableName() string { return "bookings" }
