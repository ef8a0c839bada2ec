package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/calendar"
	"github.com/m04kA/SMC-SlotCapacity/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований (только подсчёт занятости)
type BookingRepository interface {
	CountActiveBySlot(ctx context.Context, date time.Time, slot types.TimeString, serviceID *int64) (int, error)
	CountActiveGrouped(ctx context.Context, from, to time.Time, serviceID *int64) ([]domain.SlotOccupancy, error)
}

// RulesProvider источник правил календаря
type RulesProvider interface {
	Rules(ctx context.Context) (*calendar.Rules, error)
}

// CapacityResolver вместимость слотов с учётом overrides
type CapacityResolver interface {
	DayCapacities(ctx context.Context, rules *calendar.Rules, date time.Time, slots []types.TimeString) (map[types.TimeString]domain.EffectiveCapacity, error)
}

// ServiceCatalog проверка услуги из фильтра
type ServiceCatalog interface {
	Get(ctx context.Context, id int64) (*domain.Service, error)
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
