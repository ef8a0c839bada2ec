package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SlotCapacity/internal/integrations/notifier"
	"github.com/m04kA/SMC-SlotCapacity/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByTicket(ctx context.Context, ticketNumber string) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	CountActiveBySlot(ctx context.Context, date time.Time, slot types.TimeString, serviceID *int64) (int, error)
	CountActiveGrouped(ctx context.Context, from, to time.Time, serviceID *int64) ([]domain.SlotOccupancy, error)
	UpdateStatus(ctx context.Context, id int64, from []domain.BookingStatus, change booking.StatusChange) (*domain.Booking, error)
	UpdateAdminNotes(ctx context.Context, id int64, notes *string) error
}

// SettingsProvider источник настроек магазина
type SettingsProvider interface {
	Get(ctx context.Context) (*domain.ShopSettings, error)
}

// Notifier отправка уведомлений в фоне
type Notifier interface {
	Notify(eventType notifier.EventType, b *domain.Booking)
}

// Metrics счётчики переходов статуса
type Metrics interface {
	BookingTransition(to string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
