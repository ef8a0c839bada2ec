package notifier

import (
	"time"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
)

// EventType тип события бронирования
type EventType string

const (
	EventCreated   EventType = "booking.created"
	EventConfirmed EventType = "booking.confirmed"
	EventCancelled EventType = "booking.cancelled"
	EventCompleted EventType = "booking.completed"
)

// Event тело запроса к сервису уведомлений
type Event struct {
	Type               EventType `json:"type"`
	BookingID          int64     `json:"booking_id"`
	TicketNumber       string    `json:"ticket_number"`
	Status             string    `json:"status"`
	AppointmentDate    string    `json:"appointment_date"` // "2024-06-01"
	AppointmentTime    string    `json:"appointment_time"` // "14:00"
	CustomerName       string    `json:"customer_name"`
	CustomerEmail      string    `json:"customer_email"`
	CustomerPhone      string    `json:"customer_phone"`
	CancellationReason *string   `json:"cancellation_reason,omitempty"`
	OccurredAt         time.Time `json:"occurred_at"`
}

// NewEvent собирает событие из бронирования
func NewEvent(eventType EventType, b *domain.Booking, at time.Time) Event {
	return Event{
		Type:               eventType,
		BookingID:          b.ID,
		TicketNumber:       b.TicketNumber,
		Status:             string(b.Status),
		AppointmentDate:    b.AppointmentDate.Format(domain.DateFormat),
		AppointmentTime:    b.AppointmentTime.String(),
		CustomerName:       b.CustomerName,
		CustomerEmail:      b.CustomerEmail,
		CustomerPhone:      b.CustomerPhone,
		CancellationReason: b.CancellationReason,
		OccurredAt:         at,
	}
}
