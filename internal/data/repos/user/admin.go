package user

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/automate-backend/internal/domain"
	"github.com/yungbote/automate-backend/internal/pkg/dbctx"
	domainErrs "github.com/yungbote/automate-backend/internal/pkg/errors"
	"github.com/yungbote/automate-backend/internal/platform/logger"
)

type AdminRepo interface {
	Create(dbc dbctx.Context, admins []*types.Admin) ([]*types.Admin, error)
	GetByIDs(dbc dbctx.Context, adminIDs []uint) ([]*types.Admin, error)
	GetByEmails(dbc dbctx.Context, emails []string) ([]*types.Admin, error)
}

type adminRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAdminRepo(db *gorm.DB, baseLog *logger.Logger) AdminRepo {
	return &adminRepo{db: db, log: baseLog.With("repo", "AdminRepo")}
}

func (ar *adminRepo) Create(dbc dbctx.Context, admins []*types.Admin) ([]*types.Admin, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(admins) == 0 {
		return []*types.Admin{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&admins).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: admin email already registered", domainErrs.ErrConflict)
		}
		return nil, err
	}
	return admins, nil
}

func (ar *adminRepo) GetByIDs(dbc dbctx.Context, adminIDs []uint) ([]*types.Admin, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.Admin
	if len(adminIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Where("id IN ?", adminIDs).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *adminRepo) GetByEmails(dbc dbctx.Context, emails []string) ([]*types.Admin, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.Admin
	if len(emails) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Where("email IN ?", emails).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
