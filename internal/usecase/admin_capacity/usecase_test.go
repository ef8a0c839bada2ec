package admin_capacity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SlotCapacity/internal/integrations/notifier"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/bookings"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/overrides"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/settings"
	"github.com/m04kA/SMC-SlotCapacity/internal/usecase/get_availability"
	"github.com/m04kA/SMC-SlotCapacity/pkg/logger"
	"github.com/m04kA/SMC-SlotCapacity/pkg/metrics"
	"github.com/m04kA/SMC-SlotCapacity/pkg/ptr"
	"github.com/m04kA/SMC-SlotCapacity/pkg/ticket"
	"github.com/m04kA/SMC-SlotCapacity/pkg/types"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type noopNotifier struct{}

func (noopNotifier) Notify(notifier.EventType, *domain.Booking) {}

type anyService struct{}

func (anyService) Get(_ context.Context, id int64) (*domain.Service, error) {
	return &domain.Service{ID: id, DurationMinutes: 60, IsActive: true}, nil
}

type fixture struct {
	uc           *UseCase
	repo         *memory.Bookings
	settings     *settings.Service
	overrides    *overrides.Service
	availability *get_availability.UseCase
}

var (
	now      = time.Date(2024, 5, 25, 9, 0, 0, 0, time.UTC) // суббота
	thursday = time.Date(2024, 6, 6, 0, 0, 0, 0, time.UTC)
	tuesday  = time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)
)

func newFixture() *fixture {
	log := logger.NewNop()
	repo := memory.NewBookings()
	settingsSvc := settings.NewService(memory.NewSettings(), repo, log)
	overridesSvc := overrides.NewService(memory.NewOverrides(), settingsSvc, log)
	bookingsSvc := bookings.NewService(repo, settingsSvc, noopNotifier{}, (*metrics.Metrics)(nil), log)

	return &fixture{
		uc: NewUseCase(overridesSvc, bookingsSvc, repo, settingsSvc, log).
			WithTimeProvider(fixedTime{now: now}),
		repo:      repo,
		settings:  settingsSvc,
		overrides: overridesSvc,
		availability: get_availability.NewUseCase(repo, settingsSvc, overridesSvc, anyService{}, log).
			WithTimeProvider(fixedTime{now: now}),
	}
}

func (f *fixture) book(t *testing.T, date time.Time, slot types.TimeString) *domain.Booking {
	t.Helper()
	b, err := f.repo.Create(context.Background(), &domain.Booking{
		TicketNumber:    ticket.New(date),
		Status:          domain.StatusConfirmed,
		Source:          domain.SourcePublic,
		AppointmentDate: date,
		AppointmentTime: slot,
		SlotDuration:    60,
		CustomerName:    "Anna",
		CustomerEmail:   "anna@example.com",
		CustomerPhone:   "+10000000",
	})
	require.NoError(t, err)
	return b
}

func (f *fixture) slot(t *testing.T, date time.Time, at types.TimeString) domain.TimeSlot {
	t.Helper()
	resp, err := f.availability.Execute(context.Background(), &get_availability.Request{Date: date})
	require.NoError(t, err)
	for _, s := range resp.Slots {
		if s.Time == at {
			return s
		}
	}
	t.Fatalf("slot %s not found", at)
	return domain.TimeSlot{}
}

// Снижение override с 3 до 1 при двух бронированиях
func TestUpdateOverride_LoweringBelowBookedWarnsThenApplies(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first := f.book(t, thursday, "14:00")
	second := f.book(t, thursday, "14:00")

	created, err := f.uc.CreateOverride(ctx, overrides.CreateRequest{Date: thursday, TimeSlot: "14:00", Capacity: 3, IsActive: true}, false)
	require.NoError(t, err)
	require.True(t, created.Applied)
	id := created.Override.ID

	patch := domain.OverridePatch{Capacity: ptr.Ptr(1)}

	res, err := f.uc.UpdateOverride(ctx, id, patch, false)
	require.NoError(t, err)
	assert.False(t, res.Applied)
	require.NotNil(t, res.Warning)
	require.Len(t, res.Warning.Impacts, 1)
	assert.True(t, res.Warning.Impacts[0].Conflict)
	assert.Equal(t, 2, res.Warning.BookedCount())

	stored, err := f.overrides.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Capacity)

	res, err = f.uc.UpdateOverride(ctx, id, patch, true)
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, 1, res.Override.Capacity)

	for _, b := range []*domain.Booking{first, second} {
		got, err := f.repo.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusConfirmed, got.Status)
	}

	s := f.slot(t, thursday, "14:00")
	assert.Equal(t, domain.SlotFull, s.Status)
	assert.Equal(t, 1, s.TotalCapacity)
	assert.Equal(t, 2, s.BookedCount)
}

func TestCreateOverride_WholeDaySkipsSlotsWithOwnOverride(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.book(t, thursday, "10:00")
	f.book(t, thursday, "10:00")

	_, err := f.overrides.Create(ctx, overrides.CreateRequest{Date: thursday, TimeSlot: "10:00", Capacity: 2, IsActive: true})
	require.NoError(t, err)

	res, err := f.uc.CreateOverride(ctx, overrides.CreateRequest{Date: thursday, Capacity: 1, IsActive: true}, false)
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Nil(t, res.Warning)
	assert.Equal(t, domain.WholeDaySlot, res.Override.TimeSlot)
}

func TestCreateOverride_BlockingDayWithBookings(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.book(t, thursday, "11:00")

	res, err := f.uc.CreateOverride(ctx, overrides.CreateRequest{Date: thursday, Capacity: 0, IsActive: true}, false)
	require.NoError(t, err)
	assert.False(t, res.Applied)
	require.NotNil(t, res.Warning)

	list, err := f.overrides.ListByRange(ctx, thursday, thursday, false)
	require.NoError(t, err)
	assert.Empty(t, list)

	// неактивный override применяется без проверки
	res, err = f.uc.CreateOverride(ctx, overrides.CreateRequest{Date: thursday, Capacity: 0, IsActive: false}, false)
	require.NoError(t, err)
	assert.True(t, res.Applied)
}

func TestCreateOverride_Duplicate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.CreateOverride(ctx, overrides.CreateRequest{Date: thursday, TimeSlot: "12:00", Capacity: 4, IsActive: true}, false)
	require.NoError(t, err)

	_, err = f.uc.CreateOverride(ctx, overrides.CreateRequest{Date: thursday, TimeSlot: "12:00", Capacity: 5, IsActive: true}, true)
	assert.ErrorIs(t, err, domain.ErrDuplicateOverride)
}

func TestDeleteOverride_RevertsToDefault(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	res, err := f.uc.CreateOverride(ctx, overrides.CreateRequest{Date: tuesday, TimeSlot: "10:00", Capacity: 7, IsActive: true}, false)
	require.NoError(t, err)
	assert.Equal(t, 7, f.slot(t, tuesday, "10:00").TotalCapacity)

	require.NoError(t, f.uc.DeleteOverride(ctx, res.Override.ID))
	assert.Equal(t, domain.DefaultCapacityMonWed, f.slot(t, tuesday, "10:00").TotalCapacity)

	assert.ErrorIs(t, f.uc.DeleteOverride(ctx, res.Override.ID), domain.ErrNotFound)
}

func TestUpdateDefaultCapacity(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.book(t, tuesday, "10:00")
	f.book(t, tuesday, "10:00")
	f.book(t, thursday, "10:00")
	f.book(t, thursday, "10:00")

	// четверг закрыт override на весь день и не проверяется
	_, err := f.overrides.Create(ctx, overrides.CreateRequest{Date: thursday, Capacity: 2, IsActive: true})
	require.NoError(t, err)

	res, err := f.uc.UpdateDefaultCapacity(ctx, 1, 1, false)
	require.NoError(t, err)
	assert.False(t, res.Applied)
	require.NotNil(t, res.Warning)
	require.Len(t, res.Warning.Impacts, 1)
	assert.Equal(t, "2024-06-04", res.Warning.Impacts[0].Date)

	current, err := f.settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCapacityMonWed, current.Capacity.MonWed)

	res, err = f.uc.UpdateDefaultCapacity(ctx, 2, 1, false)
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Nil(t, res.Warning)
	assert.Equal(t, 2, res.Settings.Capacity.MonWed)
	assert.Equal(t, 1, res.Settings.Capacity.ThuSun)

	res, err = f.uc.UpdateDefaultCapacity(ctx, 1, 1, true)
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.NotNil(t, res.Warning)

	_, err = f.uc.UpdateDefaultCapacity(ctx, -1, 1, true)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
