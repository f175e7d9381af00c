package garage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/automate-backend/internal/data/repos/testutil"
	types "github.com/yungbote/automate-backend/internal/domain"
	"github.com/yungbote/automate-backend/internal/pkg/dbctx"
	domainErrs "github.com/yungbote/automate-backend/internal/pkg/errors"
)

func TestCarRepo(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewCarRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx}

	u := testutil.SeedUser(t, ctx, db, "cars@example.com")
	other := testutil.SeedUser(t, ctx, db, "other@example.com")
	created, err := repo.Create(dbc, []*types.Car{
		{UserID: u.ID, Make: "Honda", Model: "Civic", Year: 2015, Mileage: 90000, EngineType: "Gasoline", DrivingCondition: "Fair"},
		{UserID: u.ID, Make: "Tesla", Model: "3", Year: 2021, Mileage: 12000, EngineType: "Electric", DrivingCondition: "Excellent"},
		{UserID: other.ID, Make: "Ford", Model: "F-150", Year: 2010, Mileage: 150000, EngineType: "Diesel", DrivingCondition: "Good"},
	})
	require.NoError(t, err)
	require.Len(t, created, 3)

	mine, err := repo.GetByUserID(dbc, u.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "Honda", mine[0].Make)
	assert.Equal(t, "Tesla", mine[1].Make)

	byID, err := repo.GetByIDs(dbc, []uint{created[2].ID})
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, other.ID, byID[0].UserID)
}

func TestBookingRepoLifecycle(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewBookingRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx}

	u := testutil.SeedUser(t, ctx, db, "bookings@example.com")
	car := testutil.SeedCar(t, ctx, db, u.ID, "Good")

	b1 := testutil.SeedBooking(t, ctx, db, u.ID, car.ID, "Oil Change", "2030-05-01", types.BookingStatusPending)
	testutil.SeedBooking(t, ctx, db, u.ID, car.ID, "Oil Change", "2030-05-02", types.BookingStatusPending)
	testutil.SeedBooking(t, ctx, db, u.ID, car.ID, "Tire Rotation", "2030-05-01", types.BookingStatusApproved)

	require.NoError(t, repo.UpdateStatus(dbc, b1.ID, types.BookingStatusApproved))
	err := repo.UpdateStatus(dbc, 4242, types.BookingStatusApproved)
	assert.True(t, errors.Is(err, domainErrs.ErrNotFound))

	byStatus, err := repo.CountByStatus(dbc)
	require.NoError(t, err)
	assert.Equal(t, []CountByKey{{Key: "Approved", Count: 2}, {Key: "Pending", Count: 1}}, byStatus)

	byService, err := repo.CountByServiceType(dbc)
	require.NoError(t, err)
	assert.Equal(t, []CountByKey{{Key: "Oil Change", Count: 2}, {Key: "Tire Rotation", Count: 1}}, byService)

	pending, err := repo.List(dbc, types.BookingStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "2030-05-02", pending[0].AppointmentDate)
	require.NotNil(t, pending[0].Car)

	mine, err := repo.GetByUserID(dbc, u.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 3)
}

func TestBookingRepoReminders(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewBookingRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx}

	u := testutil.SeedUser(t, ctx, db, "remind@example.com")
	car := testutil.SeedCar(t, ctx, db, u.ID, "Fair")
	due := testutil.SeedBooking(t, ctx, db, u.ID, car.ID, "Battery Check", "2030-01-10", types.BookingStatusApproved)
	testutil.SeedBooking(t, ctx, db, u.ID, car.ID, "Battery Check", "2030-01-11", types.BookingStatusApproved)

	statuses := []string{types.BookingStatusPending, types.BookingStatusApproved}
	got, err := repo.GetDueUnreminded(dbc, "2030-01-10", statuses)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, due.ID, got[0].ID)

	require.NoError(t, repo.MarkReminded(dbc, []uint{due.ID}, time.Now().UTC()))
	got, err = repo.GetDueUnreminded(dbc, "2030-01-10", statuses)
	require.NoError(t, err)
	assert.Empty(t, got)
}
