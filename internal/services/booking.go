package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/automate-backend/internal/data/repos"
	types "github.com/yungbote/automate-backend/internal/domain"
	"github.com/yungbote/automate-backend/internal/observability"
	"github.com/yungbote/automate-backend/internal/pkg/dbctx"
	domainErrs "github.com/yungbote/automate-backend/internal/pkg/errors"
	"github.com/yungbote/automate-backend/internal/platform/logger"
)

type BookingInput struct {
	CarID           uint   `json:"car_id" validate:"required"`
	ServiceType     string `json:"service_type" validate:"required,oneof='Oil Change' 'Tire Rotation' 'Battery Check' 'Brake Inspection'"`
	AppointmentDate string `json:"appointment_date" validate:"required,datetime=2006-01-02"`
	TimeSlot        string `json:"time_slot" validate:"required,oneof=Morning Afternoon Evening"`
}

type BookingStats struct {
	ByStatus  []repos.CountByKey `json:"by_status"`
	ByService []repos.CountByKey `json:"by_service"`
}

type BookingService interface {
	Create(ctx context.Context, in BookingInput) (*types.Booking, error)
	ListMine(ctx context.Context) ([]*types.Booking, error)
	// Admin operations.
	ListAll(ctx context.Context, status string) ([]*types.Booking, error)
	Approve(ctx context.Context, bookingID uint) (*types.Booking, error)
	Stats(ctx context.Context) (*BookingStats, error)
}

type bookingService struct {
	log           *logger.Logger
	bookingRepo   repos.BookingRepo
	cars          CarService
	notifications NotificationService
	notifier      BookingNotifier
	metrics       *observability.Metrics
	now           func() time.Time
}

func NewBookingService(
	log *logger.Logger,
	bookingRepo repos.BookingRepo,
	cars CarService,
	notifications NotificationService,
	notifier BookingNotifier,
	metrics *observability.Metrics,
	now func() time.Time,
) BookingService {
	if now == nil {
		now = time.Now
	}
	return &bookingService{
		log:           log.With("service", "BookingService"),
		bookingRepo:   bookingRepo,
		cars:          cars,
		notifications: notifications,
		notifier:      notifier,
		metrics:       metrics,
		now:           now,
	}
}

func (bs *bookingService) Create(ctx context.Context, in BookingInput) (*types.Booking, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	in.ServiceType = strings.TrimSpace(in.ServiceType)
	in.AppointmentDate = strings.TrimSpace(in.AppointmentDate)
	in.TimeSlot = strings.TrimSpace(in.TimeSlot)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	day, err := time.ParseInLocation(types.DateLayout, in.AppointmentDate, time.Local)
	if err != nil {
		return nil, badRequest("validation_failed", "appointment_date must use the format YYYY-MM-DD")
	}
	if day.Before(startOfDay(bs.now())) {
		return nil, badRequest("date_in_past", "appointment_date cannot be in the past")
	}
	car, err := bs.cars.GetOwnedCar(ctx, in.CarID)
	if err != nil {
		return nil, err
	}

	booking := &types.Booking{
		UserID:          userID,
		CarID:           car.ID,
		ServiceType:     in.ServiceType,
		AppointmentDate: day.Format(types.DateLayout),
		TimeSlot:        in.TimeSlot,
		Status:          types.BookingStatusPending,
	}
	if _, err := bs.bookingRepo.Create(dbctx.Context{Ctx: ctx}, []*types.Booking{booking}); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	booking.Car = car
	bs.metrics.IncBooking("created")
	bs.notifier.BookingCreated(ctx, booking)
	bs.log.Info("Booking created", "user_id", userID, "booking_id", booking.ID, "date", booking.AppointmentDate)
	return booking, nil
}

func (bs *bookingService) ListMine(ctx context.Context) ([]*types.Booking, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return bs.bookingRepo.GetByUserID(dbctx.Context{Ctx: ctx}, userID)
}

func (bs *bookingService) ListAll(ctx context.Context, status string) ([]*types.Booking, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return bs.bookingRepo.List(dbctx.Context{Ctx: ctx}, strings.TrimSpace(status))
}

// Approve marks a booking approved and notifies its owner. Approving an
// already approved booking returns it unchanged without a second notification.
func (bs *bookingService) Approve(ctx context.Context, bookingID uint) (*types.Booking, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	booking, err := bs.load(dbc, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status == types.BookingStatusApproved {
		return booking, nil
	}
	if err := bs.bookingRepo.UpdateStatus(dbc, bookingID, types.BookingStatusApproved); err != nil {
		return nil, err
	}
	booking.Status = types.BookingStatusApproved
	bs.metrics.IncBooking("approved")

	msg := fmt.Sprintf("Your %s appointment on %s (%s) has been approved.", booking.ServiceType, booking.AppointmentDate, booking.TimeSlot)
	if _, err := bs.notifications.Notify(ctx, booking.UserID, msg, NotificationSourceApproval); err != nil {
		bs.log.Warn("Approval notification failed", "booking_id", bookingID, "error", err)
	}
	bs.notifier.BookingApproved(ctx, booking)
	bs.log.Info("Booking approved", "booking_id", bookingID)
	return booking, nil
}

func (bs *bookingService) Stats(ctx context.Context) (*BookingStats, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	byStatus, err := bs.bookingRepo.CountByStatus(dbc)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	byService, err := bs.bookingRepo.CountByServiceType(dbc)
	if err != nil {
		return nil, fmt.Errorf("count by service: %w", err)
	}
	return &BookingStats{ByStatus: byStatus, ByService: byService}, nil
}

func (bs *bookingService) load(dbc dbctx.Context, bookingID uint) (*types.Booking, error) {
	found, err := bs.bookingRepo.GetByIDs(dbc, []uint{bookingID})
	if err != nil {
		return nil, fmt.Errorf("lookup booking: %w", err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("booking %d: %w", bookingID, domainErrs.ErrNotFound)
	}
	return found[0], nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
