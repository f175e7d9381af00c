package garage

import (
	"gorm.io/gorm"

	types "github.com/yungbote/automate-backend/internal/domain"
	"github.com/yungbote/automate-backend/internal/pkg/dbctx"
	"github.com/yungbote/automate-backend/internal/platform/logger"
)

type CarRepo interface {
	Create(dbc dbctx.Context, cars []*types.Car) ([]*types.Car, error)
	GetByIDs(dbc dbctx.Context, carIDs []uint) ([]*types.Car, error)
	GetByUserID(dbc dbctx.Context, userID uint) ([]*types.Car, error)
}

type carRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCarRepo(db *gorm.DB, baseLog *logger.Logger) CarRepo {
	return &carRepo{db: db, log: baseLog.With("repo", "CarRepo")}
}

func (cr *carRepo) Create(dbc dbctx.Context, cars []*types.Car) ([]*types.Car, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(cars) == 0 {
		return []*types.Car{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&cars).Error; err != nil {
		return nil, err
	}
	return cars, nil
}

func (cr *carRepo) GetByIDs(dbc dbctx.Context, carIDs []uint) ([]*types.Car, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Car
	if len(carIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", carIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *carRepo) GetByUserID(dbc dbctx.Context, userID uint) ([]*types.Car, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Car
	if err := transaction.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
