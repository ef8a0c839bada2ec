package settings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек магазина
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.ShopSettings, error)
	Upsert(ctx context.Context, s domain.ShopSettings) (*domain.ShopSettings, error)
}

// BookingLister интерфейс чтения бронирований для проверки смены сетки слотов
type BookingLister interface {
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

type TimeProvider interface {
	Now() time.Time
}

type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time { return time.Now() }

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
