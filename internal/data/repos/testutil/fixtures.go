package testutil

import (
	"context"
	"testing"

	"gorm.io/gorm"

	types "github.com/yungbote/automate-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		Name:     "Test Driver",
		Email:    email,
		Phone:    "555-0100",
		Password: "pw",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedCar(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uint, condition string) *types.Car {
	tb.Helper()
	c := &types.Car{
		UserID:           userID,
		Make:             "Toyota",
		Model:            "Corolla",
		Year:             2018,
		Mileage:          45000,
		EngineType:       "Gasoline",
		DrivingCondition: condition,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed car: %v", err)
	}
	return c
}

func SeedBooking(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, carID uint, serviceType, date, status string) *types.Booking {
	tb.Helper()
	b := &types.Booking{
		UserID:          userID,
		CarID:           carID,
		ServiceType:     serviceType,
		AppointmentDate: date,
		TimeSlot:        "Morning",
		Status:          status,
	}
	if err := tx.WithContext(ctx).Create(b).Error; err != nil {
		tb.Fatalf("seed booking: %v", err)
	}
	return b
}
