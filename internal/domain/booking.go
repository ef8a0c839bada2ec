package domain

import (
	"time"

	"github.com/m04kA/SMC-SlotCapacity/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// BookingSource shows which flow created the booking
type BookingSource string

const (
	SourcePublic BookingSource = "public"
	SourceAdmin  BookingSource = "admin"
)

// Booking occupies one unit of capacity at (AppointmentDate, AppointmentTime) unless cancelled
type Booking struct {
	ID              int64
	TicketNumber    string
	Status          BookingStatus
	Source          BookingSource
	AppointmentDate time.Time
	AppointmentTime types.TimeString
	SlotDuration    int // minutes

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	ServiceID         *int64
	BookingForName    *string
	SpecialRequest    *string
	AdminNotes        *string
	InspirationPhotos []string

	IsPrepaid        bool
	SkipNotification bool
	OverCapacity     bool // created by admin on top of a full slot

	ConfirmedAt        *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason *string
	CancelledBy        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies capacity
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsTerminal returns true for completed and cancelled bookings
func (b *Booking) IsTerminal() bool {
	return b.Status.IsTerminal()
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeConfirmed returns true if the booking is waiting for confirmation
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending
}

// CanBeCompleted returns true if the booking may move to completed.
// Pending bookings are completable only when the shop has no confirm step.
func (b *Booking) CanBeCompleted(requireConfirmation bool) bool {
	if b.Status == StatusConfirmed {
		return true
	}
	return b.Status == StatusPending && !requireConfirmation
}

// IsTerminal returns true for statuses with no outgoing transitions
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsValid checks that the status is one of the known values
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// BookingsFilter фильтр выборки бронирований (отчёты, админка)
type BookingsFilter struct {
	StartDate       *time.Time     // включительно
	EndDate         *time.Time     // включительно
	Status          *BookingStatus // если nil - все статусы, кроме отменённых (см. IncludeInactive)
	ServiceID       *int64
	CustomerEmail   *string
	IncludeInactive bool
	Limit           uint64
	Offset          uint64
}

// SlotOccupancy количество активных бронирований в слоте
type SlotOccupancy struct {
	Date  time.Time
	Time  types.TimeString
	Count int
}
