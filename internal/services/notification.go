package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/automate-backend/internal/data/repos"
	types "github.com/yungbote/automate-backend/internal/domain"
	"github.com/yungbote/automate-backend/internal/observability"
	"github.com/yungbote/automate-backend/internal/pkg/dbctx"
	"github.com/yungbote/automate-backend/internal/platform/logger"
	"github.com/yungbote/automate-backend/internal/platform/sendgrid"
	"github.com/yungbote/automate-backend/internal/platform/twilio"
)

const (
	NotificationSourceApproval = "approval"
	NotificationSourceReminder = "reminder"

	deliveryTimeout = 30 * time.Second
)

type NotificationService interface {
	// Notify stores a notification for userID, pushes it to live streams and
	// sends a best-effort email and SMS.
	Notify(ctx context.Context, userID uint, message, source string) (*types.Notification, error)
	List(ctx context.Context, limit int) ([]*types.Notification, error)
}

type notificationService struct {
	log      *logger.Logger
	repo     repos.NotificationRepo
	userRepo repos.UserRepo
	notifier BookingNotifier
	mailer   sendgrid.Client
	sms      twilio.Client
	metrics  *observability.Metrics
}

func NewNotificationService(
	log *logger.Logger,
	repo repos.NotificationRepo,
	userRepo repos.UserRepo,
	notifier BookingNotifier,
	mailer sendgrid.Client,
	sms twilio.Client,
	metrics *observability.Metrics,
) NotificationService {
	return &notificationService{
		log:      log.With("service", "NotificationService"),
		repo:     repo,
		userRepo: userRepo,
		notifier: notifier,
		mailer:   mailer,
		sms:      sms,
		metrics:  metrics,
	}
}

func (ns *notificationService) Notify(ctx context.Context, userID uint, message, source string) (*types.Notification, error) {
	message = strings.TrimSpace(message)
	if userID == 0 || message == "" {
		return nil, badRequest("invalid_notification", "notification needs a recipient and a message")
	}
	n := &types.Notification{UserID: userID, Message: message}
	if _, err := ns.repo.Create(dbctx.Context{Ctx: ctx}, []*types.Notification{n}); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	ns.metrics.IncNotification(source)
	if ns.notifier != nil {
		ns.notifier.NotificationCreated(ctx, n)
	}
	ns.deliver(ctx, userID, message)
	return n, nil
}

func (ns *notificationService) List(ctx context.Context, limit int) ([]*types.Notification, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return ns.repo.GetByUserID(dbctx.Context{Ctx: ctx}, userID, limit)
}

// deliver looks up the recipient, then sends email and SMS detached from
// the request so retries never delay the caller.
func (ns *notificationService) deliver(ctx context.Context, userID uint, message string) {
	if ns.mailer == nil && ns.sms == nil {
		return
	}
	users, err := ns.userRepo.GetByIDs(dbctx.Context{Ctx: ctx}, []uint{userID})
	if err != nil || len(users) == 0 {
		ns.log.Warn("Skipping notification delivery; recipient lookup failed", "user_id", userID, "error", err)
		return
	}
	u := users[0]
	detached := context.WithoutCancel(ctx)

	if ns.mailer != nil {
		to := sendgrid.EmailAddress{Email: u.Email, Name: u.Name}
		mailCtx, cancel := context.WithTimeout(detached, deliveryTimeout)
		go func() {
			defer cancel()
			_, err := ns.mailer.Send(mailCtx, sendgrid.SendEmailRequest{
				To:         []sendgrid.EmailAddress{to},
				Subject:    "AutoMate notification",
				Text:       message,
				Categories: []string{"notification"},
			})
			switch {
			case err == nil:
			case errors.Is(err, sendgrid.ErrDisabled):
				ns.log.Debug("Notification email skipped; mail disabled", "user_id", userID)
			default:
				ns.log.Warn("Notification email failed", "user_id", userID, "error", err)
			}
		}()
	}

	phone := strings.TrimSpace(u.Phone)
	if ns.sms != nil && phone != "" {
		smsCtx, cancel := context.WithTimeout(detached, deliveryTimeout)
		go func() {
			defer cancel()
			_, err := ns.sms.SendSMS(smsCtx, phone, message)
			switch {
			case err == nil:
			case errors.Is(err, twilio.ErrDisabled):
				ns.log.Debug("Notification SMS skipped; sms disabled", "user_id", userID)
			default:
				ns.log.Warn("Notification SMS failed", "user_id", userID, "error", err)
			}
		}()
	}
}
