package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	types "github.com/yungbote/automate-backend/internal/domain"
	"github.com/yungbote/automate-backend/internal/realtime"
)

func TestAddCarValidation(t *testing.T) {
	e := newEnv(t)
	id := e.register(t, "dana@example.com")
	ctx := userCtx(id)

	valid := func() CarInput {
		return CarInput{Make: "Honda", Model: "Civic", Year: ptr(2020), Mileage: ptr(15000), EngineType: "Gasoline", DrivingCondition: "Good"}
	}

	car, err := e.cars.AddCar(ctx, valid())
	require.NoError(t, err)
	require.Equal(t, id, car.UserID)

	cases := map[string]func(in *CarInput){
		"year too old":     func(in *CarInput) { in.Year = ptr(1899) },
		"year in future":   func(in *CarInput) { in.Year = ptr(fixedNow.Year() + 1) },
		"negative mileage": func(in *CarInput) { in.Mileage = ptr(-1) },
		"missing mileage":  func(in *CarInput) { in.Mileage = nil },
		"bad engine":       func(in *CarInput) { in.EngineType = "Steam" },
		"blank make":       func(in *CarInput) { in.Make = "  " },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := valid()
			mutate(&in)
			_, err := e.cars.AddCar(ctx, in)
			require.Equal(t, http.StatusBadRequest, statusOf(t, err))
		})
	}

	cars, err := e.cars.ListCars(ctx)
	require.NoError(t, err)
	require.Len(t, cars, 1)
}

func TestGetOwnedCarHidesOtherUsersCars(t *testing.T) {
	e := newEnv(t)
	owner := e.register(t, "owner@example.com")
	other := e.register(t, "other@example.com")
	carID := e.addCar(t, owner)

	_, err := e.cars.GetOwnedCar(userCtx(other), carID)
	require.Equal(t, http.StatusNotFound, statusOf(t, err))

	_, err = e.cars.AddCar(adminCtx(1), CarInput{})
	require.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

func TestBookingLifecycle(t *testing.T) {
	e := newEnv(t)
	userID := e.register(t, "dana@example.com")
	carID := e.addCar(t, userID)
	ctx := userCtx(userID)

	_, err := e.bookings.Create(ctx, BookingInput{CarID: carID, ServiceType: "Oil Change", AppointmentDate: "2026-03-09", TimeSlot: "Morning"})
	require.Equal(t, http.StatusBadRequest, statusOf(t, err))
	require.Contains(t, err.Error(), "past")

	_, err = e.bookings.Create(ctx, BookingInput{CarID: carID, ServiceType: "Car Wash", AppointmentDate: "2026-03-12", TimeSlot: "Morning"})
	require.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = e.bookings.Create(ctx, BookingInput{CarID: carID, ServiceType: "Oil Change", AppointmentDate: "12/03/2026", TimeSlot: "Morning"})
	require.Equal(t, http.StatusBadRequest, statusOf(t, err))

	b, err := e.bookings.Create(ctx, BookingInput{CarID: carID, ServiceType: "Brake Inspection", AppointmentDate: "2026-03-10", TimeSlot: "Evening"})
	require.NoError(t, err)
	require.Equal(t, types.BookingStatusPending, b.Status)

	mine, err := e.bookings.ListMine(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].Car)

	_, err = e.bookings.Approve(ctx, b.ID)
	require.Equal(t, http.StatusForbidden, statusOf(t, err))

	approved, err := e.bookings.Approve(adminCtx(1), b.ID)
	require.NoError(t, err)
	require.Equal(t, types.BookingStatusApproved, approved.Status)

	notes, err := e.notifs.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Contains(t, notes[0].Message, "Brake Inspection")
	require.Contains(t, notes[0].Message, "approved")

	select {
	case mail := <-e.mailer.sent:
		require.Equal(t, "dana@example.com", mail.To[0].Email)
	case <-time.After(2 * time.Second):
		t.Fatal("approval email not sent")
	}
	select {
	case sms := <-e.sms.sent:
		require.Contains(t, sms, "555-0101: ")
		require.Contains(t, sms, "approved")
	case <-time.After(2 * time.Second):
		t.Fatal("approval sms not sent")
	}

	// Approving twice does not notify again.
	_, err = e.bookings.Approve(adminCtx(1), b.ID)
	require.NoError(t, err)
	notes, err = e.notifs.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, notes, 1)

	require.Equal(t, []realtime.SSEEvent{
		realtime.SSEEventBookingCreated,
		realtime.SSEEventNotificationCreated,
		realtime.SSEEventBookingApproved,
	}, e.emitter.events())

	_, err = e.bookings.Approve(adminCtx(1), 9999)
	require.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestBookingStatsAndCharts(t *testing.T) {
	e := newEnv(t)
	userID := e.register(t, "dana@example.com")
	carID := e.addCar(t, userID)
	ctx := userCtx(userID)

	for _, svc := range []string{"Oil Change", "Oil Change", "Tire Rotation"} {
		_, err := e.bookings.Create(ctx, BookingInput{CarID: carID, ServiceType: svc, AppointmentDate: "2026-04-01", TimeSlot: "Afternoon"})
		require.NoError(t, err)
	}
	all, err := e.bookings.ListAll(adminCtx(1), "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	_, err = e.bookings.Approve(adminCtx(1), all[0].ID)
	require.NoError(t, err)

	_, err = e.bookings.Stats(ctx)
	require.Equal(t, http.StatusForbidden, statusOf(t, err))

	stats, err := e.bookings.Stats(adminCtx(1))
	require.NoError(t, err)
	require.Equal(t, "Oil Change", stats.ByService[0].Key)
	require.EqualValues(t, 2, stats.ByService[0].Count)
	counts := map[string]int64{}
	for _, c := range stats.ByStatus {
		counts[c.Key] = c.Count
	}
	require.EqualValues(t, 1, counts[types.BookingStatusApproved])
	require.EqualValues(t, 2, counts[types.BookingStatusPending])

	pending, err := e.bookings.ListAll(adminCtx(1), types.BookingStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	for _, kind := range []string{ChartStatus, ChartServices} {
		png, err := e.charts.Render(adminCtx(1), kind)
		require.NoError(t, err)
		require.Equal(t, "\x89PNG", string(png[:4]))
	}
	_, err = e.charts.Render(adminCtx(1), "pie")
	require.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestReminderRunNotifiesTomorrowsBookingsOnce(t *testing.T) {
	e := newEnv(t)
	userID := e.register(t, "dana@example.com")
	carID := e.addCar(t, userID)
	ctx := userCtx(userID)

	tomorrow, err := e.bookings.Create(ctx, BookingInput{CarID: carID, ServiceType: "Battery Check", AppointmentDate: "2026-03-11", TimeSlot: "Morning"})
	require.NoError(t, err)
	_, err = e.bookings.Create(ctx, BookingInput{CarID: carID, ServiceType: "Oil Change", AppointmentDate: "2026-03-20", TimeSlot: "Morning"})
	require.NoError(t, err)

	sent, err := e.reminder.RunOnce(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, sent)

	notes, err := e.notifs.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Contains(t, notes[0].Message, "Battery Check")
	require.Contains(t, notes[0].Message, tomorrow.AppointmentDate)

	sent, err = e.reminder.RunOnce(ctx)
	require.NoError(t, err)
	require.Zero(t, sent)
}

func TestReminderStartValidatesSchedule(t *testing.T) {
	e := newEnv(t)
	require.Error(t, e.reminder.Start(userCtx(1), "not a cron"))
	require.NoError(t, e.reminder.Start(userCtx(1), ""))
}
