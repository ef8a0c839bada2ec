package overrides

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/calendar"
)

// OverrideRepository интерфейс репозитория переопределений вместимости
type OverrideRepository interface {
	Create(ctx context.Context, o *domain.CapacityOverride) (*domain.CapacityOverride, error)
	GetByID(ctx context.Context, id int64) (*domain.CapacityOverride, error)
	ListByRange(ctx context.Context, from, to time.Time, activeOnly bool) ([]*domain.CapacityOverride, error)
	ListActiveByDate(ctx context.Context, date time.Time) ([]*domain.CapacityOverride, error)
	Update(ctx context.Context, o *domain.CapacityOverride) (*domain.CapacityOverride, error)
	Delete(ctx context.Context, id int64) error
}

// RulesProvider источник правил календаря (сервис настроек)
type RulesProvider interface {
	Rules(ctx context.Context) (*calendar.Rules, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
