package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/overrides"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/settings"
	"github.com/m04kA/SMC-SlotCapacity/pkg/logger"
	"github.com/m04kA/SMC-SlotCapacity/pkg/ptr"
	"github.com/m04kA/SMC-SlotCapacity/pkg/ticket"
	"github.com/m04kA/SMC-SlotCapacity/pkg/types"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeCatalog struct{}

func (fakeCatalog) Get(_ context.Context, id int64) (*domain.Service, error) {
	if id == 404 {
		return nil, domain.ErrNotFound
	}
	return &domain.Service{ID: id, Name: "Manicure", DurationMinutes: 60, IsActive: true}, nil
}

type fixture struct {
	uc        *UseCase
	bookings  *memory.Bookings
	overrides *overrides.Service
}

func newFixture(now time.Time) *fixture {
	log := logger.NewNop()
	bookings := memory.NewBookings()
	settingsSvc := settings.NewService(memory.NewSettings(), bookings, log)
	overridesSvc := overrides.NewService(memory.NewOverrides(), settingsSvc, log)

	uc := NewUseCase(bookings, settingsSvc, overridesSvc, fakeCatalog{}, log).
		WithTimeProvider(fixedTime{now: now})

	return &fixture{uc: uc, bookings: bookings, overrides: overridesSvc}
}

func (f *fixture) book(t *testing.T, date time.Time, slot types.TimeString, status domain.BookingStatus, serviceID *int64) {
	t.Helper()
	_, err := f.bookings.Create(context.Background(), &domain.Booking{
		TicketNumber:    ticket.New(date),
		Status:          status,
		Source:          domain.SourcePublic,
		AppointmentDate: date,
		AppointmentTime: slot,
		SlotDuration:    60,
		CustomerName:    "Anna",
		CustomerEmail:   "anna@example.com",
		CustomerPhone:   "+10000000",
		ServiceID:       serviceID,
	})
	require.NoError(t, err)
}

func findSlot(t *testing.T, slots []domain.TimeSlot, at types.TimeString) domain.TimeSlot {
	t.Helper()
	for _, s := range slots {
		if s.Time == at {
			return s
		}
	}
	t.Fatalf("slot %s not found", at)
	return domain.TimeSlot{}
}

var now = time.Date(2024, 5, 25, 9, 0, 0, 0, time.UTC)

func TestAvailability_TuesdaySlotFull(t *testing.T) {
	f := newFixture(now)
	tuesday := time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)

	f.book(t, tuesday, "10:00", domain.StatusPending, nil)
	f.book(t, tuesday, "10:00", domain.StatusConfirmed, nil)
	f.book(t, tuesday, "10:00", domain.StatusCancelled, nil)
	f.book(t, tuesday, "11:00", domain.StatusPending, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{Date: tuesday})
	require.NoError(t, err)

	full := findSlot(t, resp.Slots, "10:00")
	assert.Equal(t, domain.SlotFull, full.Status)
	assert.Equal(t, 0, full.AvailableCount)
	assert.Equal(t, 2, full.BookedCount)
	assert.Equal(t, 2, full.TotalCapacity)

	limited := findSlot(t, resp.Slots, "11:00")
	assert.Equal(t, domain.SlotLimited, limited.Status)

	free := findSlot(t, resp.Slots, "12:00")
	assert.Equal(t, domain.SlotAvailable, free.Status)
	assert.Equal(t, 2, free.AvailableCount)
}

func TestAvailability_ZeroOverrideBlocksSlot(t *testing.T) {
	f := newFixture(now)
	ctx := context.Background()
	june1 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	f.book(t, june1, "14:00", domain.StatusPending, nil)
	_, err := f.overrides.Create(ctx, overrides.CreateRequest{Date: june1, TimeSlot: "14:00", Capacity: 0, IsActive: true})
	require.NoError(t, err)

	resp, err := f.uc.Execute(ctx, &Request{Date: june1})
	require.NoError(t, err)

	blocked := findSlot(t, resp.Slots, "14:00")
	assert.Equal(t, domain.SlotBlocked, blocked.Status)
	assert.False(t, blocked.IsAvailable)
	assert.Equal(t, 1, blocked.BookedCount)

	// соседние слоты не затронуты, суббота - вместимость Чт-Вс
	other := findSlot(t, resp.Slots, "15:00")
	assert.Equal(t, domain.DefaultCapacityThuSun, other.TotalCapacity)
	assert.True(t, other.IsAvailable)
}

func TestAvailability_ChronologicalOrder(t *testing.T) {
	f := newFixture(now)

	resp, err := f.uc.Execute(context.Background(), &Request{Date: time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, domain.DefaultOpenTime, resp.Slots[0].Time)
	for i := 1; i < len(resp.Slots); i++ {
		assert.True(t, resp.Slots[i-1].Time.IsBefore(resp.Slots[i].Time))
	}
}

func TestAvailability_OutsideWindowIsBlocked(t *testing.T) {
	f := newFixture(now)

	past, err := f.uc.Execute(context.Background(), &Request{Date: now.AddDate(0, 0, -1)})
	require.NoError(t, err)
	for _, s := range past.Slots {
		assert.Equal(t, domain.SlotBlocked, s.Status)
	}

	// сегодня 09:00, отсечка 2 часа: 10:00 уже закрыт, 11:00 ещё открыт
	today, err := f.uc.Execute(context.Background(), &Request{Date: now})
	require.NoError(t, err)
	assert.False(t, findSlot(t, today.Slots, "10:00").IsAvailable)
	assert.True(t, findSlot(t, today.Slots, "11:00").IsAvailable)
}

func TestAvailability_ServiceFilter(t *testing.T) {
	f := newFixture(now)
	wednesday := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)

	f.book(t, wednesday, "10:00", domain.StatusPending, ptr.Ptr(int64(1)))
	f.book(t, wednesday, "10:00", domain.StatusPending, ptr.Ptr(int64(2)))

	resp, err := f.uc.Execute(context.Background(), &Request{Date: wednesday, ServiceID: ptr.Ptr(int64(1))})
	require.NoError(t, err)
	assert.Equal(t, 1, findSlot(t, resp.Slots, "10:00").BookedCount)

	_, err = f.uc.Execute(context.Background(), &Request{Date: wednesday, ServiceID: ptr.Ptr(int64(404))})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAvailability_ZeroDate(t *testing.T) {
	f := newFixture(now)

	_, err := f.uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}
