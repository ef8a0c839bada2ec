package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/internal/integrations/notifier"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/calendar"
	"github.com/m04kA/SMC-SlotCapacity/pkg/slotlock"
	"github.com/m04kA/SMC-SlotCapacity/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// AvailabilityProvider актуальное состояние слота
type AvailabilityProvider interface {
	Slot(ctx context.Context, rules *calendar.Rules, date time.Time, slot types.TimeString) (domain.TimeSlot, domain.EffectiveCapacity, error)
}

// RulesProvider источник правил календаря
type RulesProvider interface {
	Rules(ctx context.Context) (*calendar.Rules, error)
}

// ServiceCatalog каталог услуг
type ServiceCatalog interface {
	Get(ctx context.Context, id int64) (*domain.Service, error)
}

// Locker блокировка слота на время пересчёта и вставки
type Locker interface {
	Acquire(ctx context.Context, key string) (slotlock.ReleaseFunc, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier отправка уведомлений в фоне
type Notifier interface {
	Notify(eventType notifier.EventType, b *domain.Booking)
}

// Metrics счётчики создания бронирований
type Metrics interface {
	BookingCreated(source string, overCapacity bool)
	BookingRejected(reason string)
	SlotLockWait(result string, d time.Duration)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
