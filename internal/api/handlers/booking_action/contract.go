package booking_action

import (
	"context"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/bookings/models"
)

type BookingService interface {
	Confirm(ctx context.Context, id int64) (*domain.Booking, error)
	Complete(ctx context.Context, id int64) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64, req *models.CancelRequest) (*domain.Booking, error)
	MarkNoShow(ctx context.Context, id int64, markedBy string) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
