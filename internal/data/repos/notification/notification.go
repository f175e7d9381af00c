package notification

import (
	"gorm.io/gorm"

	types "github.com/yungbote/automate-backend/internal/domain"
	"github.com/yungbote/automate-backend/internal/pkg/dbctx"
	"github.com/yungbote/automate-backend/internal/platform/logger"
)

type NotificationRepo interface {
	Create(dbc dbctx.Context, notifications []*types.Notification) ([]*types.Notification, error)
	GetByUserID(dbc dbctx.Context, userID uint, limit int) ([]*types.Notification, error)
}

type notificationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNotificationRepo(db *gorm.DB, baseLog *logger.Logger) NotificationRepo {
	return &notificationRepo{db: db, log: baseLog.With("repo", "NotificationRepo")}
}

func (nr *notificationRepo) Create(dbc dbctx.Context, notifications []*types.Notification) ([]*types.Notification, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = nr.db
	}
	if len(notifications) == 0 {
		return []*types.Notification{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// GetByUserID returns the newest notifications first. limit <= 0 means all.
func (nr *notificationRepo) GetByUserID(dbc dbctx.Context, userID uint, limit int) ([]*types.Notification, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = nr.db
	}
	q := transaction.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var results []*types.Notification
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
