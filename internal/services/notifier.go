package services

import (
	"context"

	types "github.com/yungbote/automate-backend/internal/domain"
	"github.com/yungbote/automate-backend/internal/realtime"
)

// BookingNotifier pushes booking lifecycle events to connected dashboards.
type BookingNotifier interface {
	BookingCreated(ctx context.Context, booking *types.Booking)
	BookingApproved(ctx context.Context, booking *types.Booking)
	NotificationCreated(ctx context.Context, n *types.Notification)
}

type bookingNotifier struct {
	emit SSEEmitter
}

func NewBookingNotifier(emit SSEEmitter) BookingNotifier {
	return &bookingNotifier{emit: emit}
}

func (n *bookingNotifier) BookingCreated(ctx context.Context, booking *types.Booking) {
	if n == nil || n.emit == nil || booking == nil {
		return
	}
	n.emit.Emit(ctx, realtime.SSEMessage{
		Channel: realtime.AdminChannel,
		Event:   realtime.SSEEventBookingCreated,
		Data:    map[string]any{"booking": booking},
	})
}

func (n *bookingNotifier) BookingApproved(ctx context.Context, booking *types.Booking) {
	if n == nil || n.emit == nil || booking == nil {
		return
	}
	n.emit.Emit(ctx, realtime.SSEMessage{
		Channel: realtime.UserChannel(booking.UserID),
		Event:   realtime.SSEEventBookingApproved,
		Data:    map[string]any{"booking": booking},
	})
}

func (n *bookingNotifier) NotificationCreated(ctx context.Context, notif *types.Notification) {
	if n == nil || n.emit == nil || notif == nil || notif.UserID == 0 {
		return
	}
	n.emit.Emit(ctx, realtime.SSEMessage{
		Channel: realtime.UserChannel(notif.UserID),
		Event:   realtime.SSEEventNotificationCreated,
		Data:    map[string]any{"notification": notif},
	})
}
