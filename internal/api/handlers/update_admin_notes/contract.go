package update_admin_notes

import (
	"context"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
)

type BookingService interface {
	UpdateAdminNotes(ctx context.Context, id int64, notes *string) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
