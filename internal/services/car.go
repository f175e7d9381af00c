package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/automate-backend/internal/data/repos"
	types "github.com/yungbote/automate-backend/internal/domain"
	"github.com/yungbote/automate-backend/internal/domain/garage"
	"github.com/yungbote/automate-backend/internal/pkg/dbctx"
	domainErrs "github.com/yungbote/automate-backend/internal/pkg/errors"
	"github.com/yungbote/automate-backend/internal/platform/logger"
)

type CarInput struct {
	Make             string `json:"make" validate:"required,max=64"`
	Model            string `json:"model" validate:"required,max=64"`
	Year             *int   `json:"year" validate:"required"`
	Mileage          *int   `json:"mileage" validate:"required,gte=0"`
	EngineType       string `json:"engine_type" validate:"required,oneof=Gasoline Diesel Hybrid Electric"`
	DrivingCondition string `json:"driving_condition" validate:"required,max=32"`
}

type CarService interface {
	AddCar(ctx context.Context, in CarInput) (*types.Car, error)
	ListCars(ctx context.Context) ([]*types.Car, error)
	GetOwnedCar(ctx context.Context, carID uint) (*types.Car, error)
}

type carService struct {
	log     *logger.Logger
	carRepo repos.CarRepo
	now     func() time.Time
}

func NewCarService(log *logger.Logger, carRepo repos.CarRepo, now func() time.Time) CarService {
	if now == nil {
		now = time.Now
	}
	return &carService{
		log:     log.With("service", "CarService"),
		carRepo: carRepo,
		now:     now,
	}
}

func (cs *carService) AddCar(ctx context.Context, in CarInput) (*types.Car, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	in.Make = strings.TrimSpace(in.Make)
	in.Model = strings.TrimSpace(in.Model)
	in.EngineType = strings.TrimSpace(in.EngineType)
	in.DrivingCondition = strings.TrimSpace(in.DrivingCondition)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	maxYear := cs.now().Year()
	if *in.Year < garage.MinModelYear || *in.Year > maxYear {
		return nil, badRequest("validation_failed", fmt.Sprintf("year must be between %d and %d", garage.MinModelYear, maxYear))
	}

	car := &types.Car{
		UserID:           userID,
		Make:             in.Make,
		Model:            in.Model,
		Year:             *in.Year,
		Mileage:          *in.Mileage,
		EngineType:       in.EngineType,
		DrivingCondition: in.DrivingCondition,
	}
	if _, err := cs.carRepo.Create(dbctx.Context{Ctx: ctx}, []*types.Car{car}); err != nil {
		return nil, fmt.Errorf("create car: %w", err)
	}
	cs.log.Info("Car added", "user_id", userID, "car_id", car.ID)
	return car, nil
}

func (cs *carService) ListCars(ctx context.Context) ([]*types.Car, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return cs.carRepo.GetByUserID(dbctx.Context{Ctx: ctx}, userID)
}

// GetOwnedCar reports a car owned by someone else as not found.
func (cs *carService) GetOwnedCar(ctx context.Context, carID uint) (*types.Car, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	found, err := cs.carRepo.GetByIDs(dbctx.Context{Ctx: ctx}, []uint{carID})
	if err != nil {
		return nil, fmt.Errorf("lookup car: %w", err)
	}
	if len(found) == 0 || found[0].UserID != userID {
		return nil, fmt.Errorf("car %d: %w", carID, domainErrs.ErrNotFound)
	}
	return found[0], nil
}
