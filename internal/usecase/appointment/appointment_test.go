package appointment

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/lock"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memory"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type recordingSink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *recordingSink) Write(_ context.Context, ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

type fixture struct {
	store  *memory.Store
	shop   *models.Barbershop
	create *CreateAppointment
	cancel *CancelAppointment
	status *UpdateStatus
	del    *DeleteAppointment
	slots  *GetAvailability
	check  *CheckSlot
	list   *ListUserAppointments
	stats  *GetUserStats
	ops    *ListAppointments
}

func newFixture(t *testing.T, dispatcher *audit.Dispatcher) *fixture {
	t.Helper()

	s := memory.New()
	shop := &models.Barbershop{
		Name:         "Barbearia Central",
		Location:     "Centro",
		Price:        45,
		WorkingHours: models.WorkingHours{Start: "09:00", End: "11:00", IntervalMin: 60},
		Services:     []models.Service{{ID: 1, Name: "Corte", Price: 45, DurationMin: 30}},
	}
	require.NoError(t, s.CreateBarbershop(context.Background(), shop))

	return &fixture{
		store:  s,
		shop:   shop,
		create: NewCreateAppointment(s, lock.NewLocalLocker(), dispatcher),
		cancel: NewCancelAppointment(s, dispatcher),
		status: NewUpdateStatus(s, dispatcher),
		del:    NewDeleteAppointment(s, dispatcher),
		slots:  NewGetAvailability(s),
		check:  NewCheckSlot(s),
		list:   NewListUserAppointments(s),
		stats:  NewGetUserStats(s),
		ops:    NewListAppointments(s),
	}
}

func (f *fixture) book(t *testing.T, userID uint, date, clock string) *models.Appointment {
	t.Helper()
	ap, err := f.create.Execute(context.Background(), CreateAppointmentInput{
		UserID:       userID,
		BarbershopID: f.shop.ID,
		ServiceID:    1,
		ServiceName:  "Corte",
		Price:        45,
		Date:         date,
		Time:         clock,
	})
	require.NoError(t, err)
	return ap
}

func TestGetAvailability_EmptyDay(t *testing.T) {
	f := newFixture(t, nil)

	slots, err := f.slots.Execute(context.Background(), domain.AvailabilityInput{
		BarbershopID: f.shop.ID, Date: "2024-02-10",
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.Slot{
		{Time: "09:00", IsAvailable: true},
		{Time: "10:00", IsAvailable: true},
	}, slots)
}

func TestGetAvailability_BookedSlotAndDeterminism(t *testing.T) {
	f := newFixture(t, nil)
	f.book(t, 1, "2024-02-10", "09:00")

	in := domain.AvailabilityInput{BarbershopID: f.shop.ID, Date: "2024-02-10"}
	first, err := f.slots.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, []domain.Slot{
		{Time: "09:00", IsAvailable: false},
		{Time: "10:00", IsAvailable: true},
	}, first)

	second, err := f.slots.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	otherDay, err := f.slots.Execute(context.Background(), domain.AvailabilityInput{
		BarbershopID: f.shop.ID, Date: "2024-02-11",
	})
	require.NoError(t, err)
	assert.True(t, otherDay[0].IsAvailable)
}

func TestGetAvailability_UnknownBarbershopIsNotFound(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.slots.Execute(context.Background(), domain.AvailabilityInput{BarbershopID: 99, Date: "2024-02-10"})
	require.Error(t, err)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	_, err = f.slots.Execute(context.Background(), domain.AvailabilityInput{BarbershopID: f.shop.ID, Date: "10/02/2024"})
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}

func TestCheckSlot(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	ap := f.book(t, 1, "2024-02-10", "10:00")

	free, err := f.check.Execute(ctx, f.shop.ID, "2024-02-10", "10:00")
	require.NoError(t, err)
	assert.False(t, free)

	_, err = f.cancel.Execute(ctx, 1, ap.ID)
	require.NoError(t, err)

	free, err = f.check.Execute(ctx, f.shop.ID, "2024-02-10", "10:00")
	require.NoError(t, err)
	assert.True(t, free)

	_, err = f.check.Execute(ctx, f.shop.ID, "2024-02-10", "9:00")
	assert.True(t, httperr.IsBusiness(err, "invalid_time"))
}

func TestCreate_CopiesRequestAndConfirms(t *testing.T) {
	f := newFixture(t, nil)
	ap, err := f.create.Execute(context.Background(), CreateAppointmentInput{
		UserID: 7, BarbershopID: f.shop.ID, ServiceID: 1,
		ServiceName: "Corte promocional", Price: 30,
		Date: "2024-02-10", Time: "10:00",
	})
	require.NoError(t, err)

	assert.NotZero(t, ap.ID)
	assert.Equal(t, string(domain.StatusConfirmed), ap.Status)
	assert.Equal(t, "Corte promocional", ap.ServiceName)
	assert.Equal(t, 30.0, ap.Price)
	assert.False(t, ap.CreatedAt.IsZero())
}

func TestCreate_Rejections(t *testing.T) {
	f := newFixture(t, nil)
	f.book(t, 1, "2024-02-10", "09:00")

	base := CreateAppointmentInput{UserID: 2, BarbershopID: f.shop.ID, ServiceID: 1, Date: "2024-02-10", Time: "09:00"}

	_, err := f.create.Execute(context.Background(), base)
	assert.True(t, httperr.IsKind(err, httperr.KindSlotUnavailable))

	in := base
	in.BarbershopID = 404
	_, err = f.create.Execute(context.Background(), in)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	in = base
	in.Time = "09:30"
	_, err = f.create.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))

	in = base
	in.Date = "2024-2-10"
	_, err = f.create.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))

	aps, err := f.store.ListAppointmentsByUser(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, aps)
}

func TestCreate_ConcurrentBookingsKeepOneConfirmed(t *testing.T) {
	f := newFixture(t, nil)

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(user uint) {
			defer wg.Done()
			_, err := f.create.Execute(context.Background(), CreateAppointmentInput{
				UserID: user, BarbershopID: f.shop.ID, ServiceID: 1,
				Date: "2024-02-10", Time: "10:00",
			})
			if err == nil {
				wins.Add(1)
				return
			}
			assert.True(t, httperr.IsKind(err, httperr.KindSlotUnavailable))
		}(uint(i + 1))
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	times, err := f.store.ListConfirmedTimes(context.Background(), f.shop.ID, "2024-02-10")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00"}, times)
}

func TestCancel_FreesSlotForAnotherUser(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	ap := f.book(t, 1, "2024-02-10", "09:00")
	_, err := f.cancel.Execute(ctx, 1, ap.ID)
	require.NoError(t, err)

	again := f.book(t, 2, "2024-02-10", "09:00")
	assert.NotEqual(t, ap.ID, again.ID)
}

func TestCancel_IdempotentAndOwnership(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	ap := f.book(t, 1, "2024-02-10", "09:00")

	_, err := f.cancel.Execute(ctx, 2, ap.ID)
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))

	for range 2 {
		got, err := f.cancel.Execute(ctx, 1, ap.ID)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCancelled), got.Status)
	}

	_, err = f.cancel.Execute(ctx, 1, 999)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	ap := f.book(t, 1, "2024-02-10", "09:00")

	_, err := f.status.Execute(ctx, ap.ID, "finished")
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidStatus))

	_, err = f.status.Execute(ctx, 999, "completed")
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	got, err := f.status.Execute(ctx, ap.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), got.Status)

	_, err = f.status.Execute(ctx, ap.ID, "confirmed")
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))

	_, err = f.cancel.Execute(ctx, 1, ap.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))

	stored, err := f.store.GetAppointment(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), stored.Status)
}

func TestDelete(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	ap := f.book(t, 1, "2024-02-10", "09:00")

	require.NoError(t, f.del.Execute(ctx, ap.ID))

	err := f.del.Execute(ctx, ap.ID)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	free, err := f.check.Execute(ctx, f.shop.ID, "2024-02-10", "09:00")
	require.NoError(t, err)
	assert.True(t, free)
}

func TestUpcomingAndHistory(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	past := f.book(t, 1, "2024-01-15", "09:00")
	future := f.book(t, 1, "2024-03-01", "09:00")
	today := f.book(t, 1, "2024-02-10", "10:00")
	later := f.book(t, 1, "2024-02-20", "09:00")

	_, err := f.cancel.Execute(ctx, 1, future.ID)
	require.NoError(t, err)

	upcoming, err := f.list.Upcoming(ctx, 1, "2024-02-10")
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, today.ID, upcoming[0].ID)
	assert.Equal(t, later.ID, upcoming[1].ID)

	history, err := f.list.History(ctx, 1, "2024-02-10")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, future.ID, history[0].ID)
	assert.Equal(t, past.ID, history[1].ID)

	for _, v := range upcoming {
		assert.NotEqual(t, future.ID, v.ID)
	}
}

func TestUpcoming_StableOnEqualDates(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	a := f.book(t, 1, "2024-02-12", "10:00")
	b := f.book(t, 1, "2024-02-12", "09:00")

	upcoming, err := f.list.Upcoming(ctx, 1, "2024-02-10")
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, a.ID, upcoming[0].ID)
	assert.Equal(t, b.ID, upcoming[1].ID)

	_, err = f.list.Upcoming(ctx, 1, "today")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}

func TestListForUser_MissingBarbershopPlaceholder(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.book(t, 1, "2024-02-10", "09:00")
	require.NoError(t, f.store.CreateAppointment(ctx, &models.Appointment{
		UserID: 1, BarbershopID: 77, Date: "2024-02-10", Time: "09:00", Status: "confirmed",
	}))

	views, err := f.list.Execute(ctx, 1)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Barbearia Central", views[0].BarbershopName)
	assert.Equal(t, "Centro", views[0].BarbershopLocation)
	assert.Equal(t, "Unknown", views[1].BarbershopName)
	assert.Empty(t, views[1].BarbershopLocation)
}

func TestStats_TotalSpentCountsCompletedOnly(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	for _, a := range []models.Appointment{
		{UserID: 1, BarbershopID: 1, Date: "2024-01-01", Time: "09:00", Price: 45, Status: "completed"},
		{UserID: 1, BarbershopID: 1, Date: "2024-01-02", Time: "09:00", Price: 30, Status: "completed"},
		{UserID: 1, BarbershopID: 1, Date: "2024-01-03", Time: "09:00", Price: 50, Status: "cancelled"},
		{UserID: 2, BarbershopID: 1, Date: "2024-01-04", Time: "09:00", Price: 99, Status: "completed"},
	} {
		require.NoError(t, f.store.CreateAppointment(ctx, &a))
	}
	f.book(t, 1, "2024-02-10", "09:00")

	stats, err := f.stats.Execute(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Confirmed)
	assert.Equal(t, 2, stats.Completed)
	assert.Equal(t, 1, stats.Cancelled)
	assert.InDelta(t, 75.0, stats.TotalSpent, 1e-9)
}

func TestListAppointments_OperatorFilter(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.book(t, 1, "2024-02-10", "09:00")
	f.book(t, 2, "2024-02-10", "10:00")
	f.book(t, 3, "2024-02-11", "09:00")

	day, err := f.ops.Execute(ctx, domain.ListFilter{BarbershopID: f.shop.ID, Date: "2024-02-10"})
	require.NoError(t, err)
	assert.Len(t, day, 2)

	all, err := f.ops.Execute(ctx, domain.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = f.ops.Execute(ctx, domain.ListFilter{BarbershopID: 404})
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestAuditEvents(t *testing.T) {
	sink := &recordingSink{}
	d := audit.NewDispatcher(sink, slog.New(slog.NewTextHandler(io.Discard, nil)))
	f := newFixture(t, d)
	ctx := context.Background()

	ap := f.book(t, 1, "2024-02-10", "09:00")
	_, err := f.cancel.Execute(ctx, 1, ap.ID)
	require.NoError(t, err)
	_, err = f.cancel.Execute(ctx, 1, ap.ID)
	require.NoError(t, err)
	require.NoError(t, f.del.Execute(ctx, ap.ID))
	d.Close()

	var actions []string
	for _, ev := range sink.events {
		actions = append(actions, ev.Action)
	}
	assert.Equal(t, []string{"appointment_created", "appointment_cancelled", "appointment_deleted"}, actions)
}
