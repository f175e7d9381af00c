package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/yungbote/automate-backend/internal/data/repos"
	types "github.com/yungbote/automate-backend/internal/domain"
	"github.com/yungbote/automate-backend/internal/observability"
	"github.com/yungbote/automate-backend/internal/pkg/dbctx"
	"github.com/yungbote/automate-backend/internal/platform/logger"
)

// ReminderService notifies owners of bookings scheduled for the next day.
type ReminderService interface {
	// RunOnce sends reminders for tomorrow's bookings and returns how many
	// were sent.
	RunOnce(ctx context.Context) (int, error)
	// Start runs RunOnce on schedule until ctx is cancelled. An empty
	// schedule disables reminders.
	Start(ctx context.Context, schedule string) error
}

type reminderService struct {
	log           *logger.Logger
	bookingRepo   repos.BookingRepo
	notifications NotificationService
	metrics       *observability.Metrics
	now           func() time.Time
}

func NewReminderService(
	log *logger.Logger,
	bookingRepo repos.BookingRepo,
	notifications NotificationService,
	metrics *observability.Metrics,
	now func() time.Time,
) ReminderService {
	if now == nil {
		now = time.Now
	}
	return &reminderService{
		log:           log.With("service", "ReminderService"),
		bookingRepo:   bookingRepo,
		notifications: notifications,
		metrics:       metrics,
		now:           now,
	}
}

var reminderStatuses = []string{types.BookingStatusPending, types.BookingStatusApproved}

func (rs *reminderService) RunOnce(ctx context.Context) (int, error) {
	tomorrow := startOfDay(rs.now()).AddDate(0, 0, 1).Format(types.DateLayout)
	dbc := dbctx.Context{Ctx: ctx}

	due, err := rs.bookingRepo.GetDueUnreminded(dbc, tomorrow, reminderStatuses)
	if err != nil {
		rs.metrics.IncReminderRun("error")
		return 0, fmt.Errorf("load due bookings: %w", err)
	}
	sent := make([]uint, 0, len(due))
	for _, b := range due {
		msg := fmt.Sprintf("Reminder: your %s appointment is tomorrow (%s, %s).", b.ServiceType, b.AppointmentDate, b.TimeSlot)
		if _, err := rs.notifications.Notify(ctx, b.UserID, msg, NotificationSourceReminder); err != nil {
			rs.log.Warn("Reminder notification failed", "booking_id", b.ID, "error", err)
			continue
		}
		sent = append(sent, b.ID)
	}
	if len(sent) > 0 {
		if err := rs.bookingRepo.MarkReminded(dbc, sent, rs.now()); err != nil {
			rs.metrics.IncReminderRun("error")
			return len(sent), fmt.Errorf("mark reminded: %w", err)
		}
	}
	rs.metrics.IncReminderRun("ok")
	rs.log.Info("Reminder run complete", "date", tomorrow, "due", len(due), "sent", len(sent))
	return len(sent), nil
}

func (rs *reminderService) Start(ctx context.Context, schedule string) error {
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		rs.log.Info("Reminders disabled (schedule not set)")
		return nil
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(schedule)
	if err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", schedule, err)
	}
	rs.log.Info("Reminders scheduled", "cron", schedule)

	go func() {
		for {
			now := rs.now()
			next := sched.Next(now)
			timer := time.NewTimer(next.Sub(now))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
			if _, err := rs.RunOnce(ctx); err != nil {
				rs.log.Warn("Reminder run failed", "error", err)
			}
		}
	}()
	return nil
}
