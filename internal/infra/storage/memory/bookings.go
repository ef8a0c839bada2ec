// Package memory - хранилище в памяти процесса (database.driver = "memory").
// Возвращает те же ошибки, что и postgres-репозитории, поэтому сервисы не различают драйверы.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SlotCapacity/pkg/types"
)

// Bookings бронирования в памяти
type Bookings struct {
	mu       sync.RWMutex
	nextID   int64
	byID     map[int64]*domain.Booking
	byTicket map[string]int64
	now      func() time.Time
}

// NewBookings создает пустое хранилище бронирований
func NewBookings() *Bookings {
	return &Bookings{
		byID:     make(map[int64]*domain.Booking),
		byTicket: make(map[string]int64),
		now:      time.Now,
	}
}

func (s *Bookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byTicket[b.TicketNumber]; ok {
		return nil, booking.ErrDuplicateTicket
	}

	s.nextID++
	now := s.now()

	stored := copyBooking(b)
	stored.ID = s.nextID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	if stored.InspirationPhotos == nil {
		stored.InspirationPhotos = []string{}
	}

	s.byID[stored.ID] = stored
	s.byTicket[stored.TicketNumber] = stored.ID

	return copyBooking(stored), nil
}

func (s *Bookings) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.byID[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	return copyBooking(b), nil
}

func (s *Bookings) GetByTicket(_ context.Context, ticketNumber string) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byTicket[ticketNumber]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	return copyBooking(s.byID[id]), nil
}

func (s *Bookings) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range s.byID {
		if !matchesFilter(b, filter) {
			continue
		}
		result = append(result, copyBooking(b))
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !sameDay(a.AppointmentDate, b.AppointmentDate) {
			return a.AppointmentDate.Before(b.AppointmentDate)
		}
		if a.AppointmentTime != b.AppointmentTime {
			return a.AppointmentTime.IsBefore(b.AppointmentTime)
		}
		return a.ID < b.ID
	})

	if filter.Offset > 0 {
		if filter.Offset >= uint64(len(result)) {
			return []*domain.Booking{}, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < uint64(len(result)) {
		result = result[:filter.Limit]
	}

	return result, nil
}

func (s *Bookings) CountActiveBySlot(_ context.Context, date time.Time, slot types.TimeString, serviceID *int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, b := range s.byID {
		if !b.IsActive() || !sameDay(b.AppointmentDate, date) || b.AppointmentTime != slot {
			continue
		}
		if serviceID != nil && (b.ServiceID == nil || *b.ServiceID != *serviceID) {
			continue
		}
		count++
	}
	return count, nil
}

func (s *Bookings) CountActiveGrouped(_ context.Context, from, to time.Time, serviceID *int64) ([]domain.SlotOccupancy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type key struct {
		date string
		slot types.TimeString
	}
	counts := make(map[key]*domain.SlotOccupancy)

	for _, b := range s.byID {
		if !b.IsActive() || dayBefore(b.AppointmentDate, from) || dayBefore(to, b.AppointmentDate) {
			continue
		}
		if serviceID != nil && (b.ServiceID == nil || *b.ServiceID != *serviceID) {
			continue
		}
		k := key{date: b.AppointmentDate.Format(domain.DateFormat), slot: b.AppointmentTime}
		occ, ok := counts[k]
		if !ok {
			occ = &domain.SlotOccupancy{Date: b.AppointmentDate, Time: b.AppointmentTime}
			counts[k] = occ
		}
		occ.Count++
	}

	result := make([]domain.SlotOccupancy, 0, len(counts))
	for _, occ := range counts {
		result = append(result, *occ)
	}
	sort.Slice(result, func(i, j int) bool {
		if !sameDay(result[i].Date, result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].Time.IsBefore(result[j].Time)
	})

	return result, nil
}

func (s *Bookings) UpdateStatus(_ context.Context, id int64, from []domain.BookingStatus, change booking.StatusChange) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.byID[id]
	if !ok || !containsStatus(from, b.Status) {
		return nil, booking.ErrStatusConflict
	}

	now := s.now()
	b.Status = change.To
	b.UpdatedAt = now

	switch change.To {
	case domain.StatusConfirmed:
		b.ConfirmedAt = &now
	case domain.StatusCompleted:
		b.ConfirmedAt = nil
		b.CompletedAt = &now
	case domain.StatusCancelled:
		b.ConfirmedAt = nil
		b.CancelledAt = &now
		b.CancellationReason = change.Reason
		b.CancelledBy = change.CancelledBy
	}

	return copyBooking(b), nil
}

func (s *Bookings) UpdateAdminNotes(_ context.Context, id int64, notes *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.byID[id]
	if !ok {
		return booking.ErrBookingNotFound
	}
	b.AdminNotes = notes
	b.UpdatedAt = s.now()
	return nil
}

func matchesFilter(b *domain.Booking, f domain.BookingsFilter) bool {
	if f.StartDate != nil && dayBefore(b.AppointmentDate, *f.StartDate) {
		return false
	}
	if f.EndDate != nil && dayBefore(*f.EndDate, b.AppointmentDate) {
		return false
	}
	if f.ServiceID != nil && (b.ServiceID == nil || *b.ServiceID != *f.ServiceID) {
		return false
	}
	if f.CustomerEmail != nil && b.CustomerEmail != *f.CustomerEmail {
		return false
	}
	if f.Status != nil {
		return b.Status == *f.Status
	}
	return f.IncludeInactive || b.IsActive()
}

func copyBooking(b *domain.Booking) *domain.Booking {
	c := *b
	if b.InspirationPhotos != nil {
		c.InspirationPhotos = append([]string(nil), b.InspirationPhotos...)
	}
	return &c
}

func containsStatus(list []domain.BookingStatus, s domain.BookingStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func sameDay(a, b time.Time) bool {
	return a.Format(domain.DateFormat) == b.Format(domain.DateFormat)
}

// dayBefore сравнивает только календарные даты
func dayBefore(a, b time.Time) bool {
	return a.Format(domain.DateFormat) < b.Format(domain.DateFormat)
}
