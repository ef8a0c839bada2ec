package get_booking_by_ticket

import (
	"context"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
)

type BookingService interface {
	GetByTicket(ctx context.Context, ticketNumber string) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
