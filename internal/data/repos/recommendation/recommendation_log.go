package recommendation

import (
	"gorm.io/gorm"

	types "github.com/yungbote/automate-backend/internal/domain"
	"github.com/yungbote/automate-backend/internal/pkg/dbctx"
	"github.com/yungbote/automate-backend/internal/platform/logger"
)

type RecommendationLogRepo interface {
	Create(dbc dbctx.Context, logs []*types.RecommendationLog) ([]*types.RecommendationLog, error)
	GetByUserID(dbc dbctx.Context, userID uint, limit int) ([]*types.RecommendationLog, error)
}

type recommendationLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecommendationLogRepo(db *gorm.DB, baseLog *logger.Logger) RecommendationLogRepo {
	return &recommendationLogRepo{db: db, log: baseLog.With("repo", "RecommendationLogRepo")}
}

func (rr *recommendationLogRepo) Create(dbc dbctx.Context, logs []*types.RecommendationLog) ([]*types.RecommendationLog, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = rr.db
	}
	if len(logs) == 0 {
		return []*types.RecommendationLog{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (rr *recommendationLogRepo) GetByUserID(dbc dbctx.Context, userID uint, limit int) ([]*types.RecommendationLog, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = rr.db
	}
	q := transaction.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var results []*types.RecommendationLog
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
