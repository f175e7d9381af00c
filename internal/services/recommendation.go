package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"gorm.io/datatypes"

	"github.com/yungbote/automate-backend/internal/data/repos"
	types "github.com/yungbote/automate-backend/internal/domain"
	"github.com/yungbote/automate-backend/internal/modules/maintenance"
	"github.com/yungbote/automate-backend/internal/observability"
	"github.com/yungbote/automate-backend/internal/pkg/dbctx"
	"github.com/yungbote/automate-backend/internal/platform/apierr"
	"github.com/yungbote/automate-backend/internal/platform/logger"
)

// Recommender predicts a maintenance label from car details.
type Recommender interface {
	Recommend(carDetails map[string]any) (string, error)
}

type RecommendationResult struct {
	Recommendation string `json:"recommendation"`
	CarID          *uint  `json:"car_id,omitempty"`
	LogID          uint   `json:"log_id"`
}

type RecommendationService interface {
	RecommendForCar(ctx context.Context, carID uint) (*RecommendationResult, error)
	Recommend(ctx context.Context, carDetails map[string]any) (*RecommendationResult, error)
	History(ctx context.Context, limit int) ([]*types.RecommendationLog, error)
}

type recommendationService struct {
	log     *logger.Logger
	model   Recommender
	cars    CarService
	logRepo repos.RecommendationLogRepo
	metrics *observability.Metrics
}

func NewRecommendationService(
	log *logger.Logger,
	model Recommender,
	cars CarService,
	logRepo repos.RecommendationLogRepo,
	metrics *observability.Metrics,
) RecommendationService {
	return &recommendationService{
		log:     log.With("service", "RecommendationService"),
		model:   model,
		cars:    cars,
		logRepo: logRepo,
		metrics: metrics,
	}
}

func (rs *recommendationService) RecommendForCar(ctx context.Context, carID uint) (*RecommendationResult, error) {
	car, err := rs.cars.GetOwnedCar(ctx, carID)
	if err != nil {
		return nil, err
	}
	id := car.ID
	return rs.run(ctx, car.UserID, &id, car.Features())
}

func (rs *recommendationService) Recommend(ctx context.Context, carDetails map[string]any) (*RecommendationResult, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if carDetails == nil {
		carDetails = map[string]any{}
	}
	return rs.run(ctx, userID, nil, carDetails)
}

func (rs *recommendationService) History(ctx context.Context, limit int) ([]*types.RecommendationLog, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return rs.logRepo.GetByUserID(dbctx.Context{Ctx: ctx}, userID, limit)
}

func (rs *recommendationService) run(ctx context.Context, userID uint, carID *uint, details map[string]any) (*RecommendationResult, error) {
	label, err := rs.model.Recommend(details)
	if err != nil {
		switch {
		case errors.Is(err, maintenance.ErrMissingFeature):
			rs.metrics.IncRecommendation("missing_feature")
			return nil, apierr.New(http.StatusBadRequest, "missing_feature", err)
		case errors.Is(err, maintenance.ErrInvalidValue):
			rs.metrics.IncRecommendation("invalid_value")
			return nil, apierr.New(http.StatusBadRequest, "invalid_value", err)
		}
		rs.metrics.IncRecommendation("error")
		return nil, fmt.Errorf("recommend: %w", err)
	}
	rs.metrics.IncRecommendation("success")

	raw, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("encode recommendation input: %w", err)
	}
	entry := &types.RecommendationLog{
		UserID:         userID,
		CarID:          carID,
		Input:          datatypes.JSON(raw),
		Recommendation: label,
	}
	if _, err := rs.logRepo.Create(dbctx.Context{Ctx: ctx}, []*types.RecommendationLog{entry}); err != nil {
		return nil, fmt.Errorf("log recommendation: %w", err)
	}
	rs.log.Debug("Recommendation served", "user_id", userID, "label", label)
	return &RecommendationResult{Recommendation: label, CarID: carID, LogID: entry.ID}, nil
}
