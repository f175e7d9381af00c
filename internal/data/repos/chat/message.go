package chat

import (
	"gorm.io/gorm"

	types "github.com/yungbote/automate-backend/internal/domain"
	"github.com/yungbote/automate-backend/internal/pkg/dbctx"
	"github.com/yungbote/automate-backend/internal/platform/logger"
)

type ChatMessageRepo interface {
	Create(dbc dbctx.Context, messages []*types.ChatMessage) ([]*types.ChatMessage, error)
	GetByUserID(dbc dbctx.Context, userID uint, limit int) ([]*types.ChatMessage, error)
}

type chatMessageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChatMessageRepo(db *gorm.DB, baseLog *logger.Logger) ChatMessageRepo {
	return &chatMessageRepo{db: db, log: baseLog.With("repo", "ChatMessageRepo")}
}

func (cr *chatMessageRepo) Create(dbc dbctx.Context, messages []*types.ChatMessage) ([]*types.ChatMessage, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(messages) == 0 {
		return []*types.ChatMessage{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// GetByUserID returns the latest exchanges in chronological order.
func (cr *chatMessageRepo) GetByUserID(dbc dbctx.Context, userID uint, limit int) ([]*types.ChatMessage, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cr.db
	}
	q := transaction.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var results []*types.ChatMessage
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}
	return results, nil
}
