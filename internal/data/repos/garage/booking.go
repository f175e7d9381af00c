package garage

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/automate-backend/internal/domain"
	"github.com/yungbote/automate-backend/internal/pkg/dbctx"
	domainErrs "github.com/yungbote/automate-backend/internal/pkg/errors"
	"github.com/yungbote/automate-backend/internal/platform/logger"
)

// CountByKey is one row of a grouped count.
type CountByKey struct {
	Key   string `gorm:"column:bucket" json:"key"`
	Count int64  `gorm:"column:total" json:"count"`
}

type BookingRepo interface {
	Create(dbc dbctx.Context, bookings []*types.Booking) ([]*types.Booking, error)
	GetByIDs(dbc dbctx.Context, bookingIDs []uint) ([]*types.Booking, error)
	GetByUserID(dbc dbctx.Context, userID uint) ([]*types.Booking, error)
	List(dbc dbctx.Context, status string) ([]*types.Booking, error)
	UpdateStatus(dbc dbctx.Context, bookingID uint, status string) error
	CountByStatus(dbc dbctx.Context) ([]CountByKey, error)
	CountByServiceType(dbc dbctx.Context) ([]CountByKey, error)
	GetDueUnreminded(dbc dbctx.Context, date string, statuses []string) ([]*types.Booking, error)
	MarkReminded(dbc dbctx.Context, bookingIDs []uint, at time.Time) error
}

type bookingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBookingRepo(db *gorm.DB, baseLog *logger.Logger) BookingRepo {
	return &bookingRepo{db: db, log: baseLog.With("repo", "BookingRepo")}
}

func (br *bookingRepo) Create(dbc dbctx.Context, bookings []*types.Booking) ([]*types.Booking, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = br.db
	}
	if len(bookings) == 0 {
		return []*types.Booking{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (br *bookingRepo) GetByIDs(dbc dbctx.Context, bookingIDs []uint) ([]*types.Booking, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = br.db
	}
	var results []*types.Booking
	if len(bookingIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Preload("Car").
		Where("id IN ?", bookingIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *bookingRepo) GetByUserID(dbc dbctx.Context, userID uint) ([]*types.Booking, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = br.db
	}
	var results []*types.Booking
	if err := transaction.WithContext(dbc.Ctx).
		Preload("Car").
		Where("user_id = ?", userID).
		Order("appointment_date ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// List returns all bookings, optionally filtered by status.
func (br *bookingRepo) List(dbc dbctx.Context, status string) ([]*types.Booking, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = br.db
	}
	q := transaction.WithContext(dbc.Ctx).Preload("Car")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var results []*types.Booking
	if err := q.Order("id ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *bookingRepo) UpdateStatus(dbc dbctx.Context, bookingID uint, status string) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = br.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&types.Booking{}).
		Where("id = ?", bookingID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("booking %d: %w", bookingID, domainErrs.ErrNotFound)
	}
	return nil
}

func (br *bookingRepo) CountByStatus(dbc dbctx.Context) ([]CountByKey, error) {
	return br.countBy(dbc, "status")
}

func (br *bookingRepo) CountByServiceType(dbc dbctx.Context) ([]CountByKey, error) {
	return br.countBy(dbc, "service_type")
}

func (br *bookingRepo) countBy(dbc dbctx.Context, column string) ([]CountByKey, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = br.db
	}
	var results []CountByKey
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.Booking{}).
		Select(column + " AS bucket, COUNT(*) AS total").
		Group(column).
		Order("total DESC, bucket ASC").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetDueUnreminded returns bookings on date with one of statuses that have
// not been reminded yet.
func (br *bookingRepo) GetDueUnreminded(dbc dbctx.Context, date string, statuses []string) ([]*types.Booking, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = br.db
	}
	var results []*types.Booking
	if len(statuses) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Preload("Car").
		Where("appointment_date = ? AND status IN ? AND reminded_at IS NULL", date, statuses).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *bookingRepo) MarkReminded(dbc dbctx.Context, bookingIDs []uint, at time.Time) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = br.db
	}
	if len(bookingIDs) == 0 {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Model(&types.Booking{}).
		Where("id IN ?", bookingIDs).
		Update("reminded_at", at).Error
}
