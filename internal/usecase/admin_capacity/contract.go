package admin_capacity

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/bookings/models"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/calendar"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/overrides"
)

// OverrideService хранилище переопределений вместимости
type OverrideService interface {
	Create(ctx context.Context, req overrides.CreateRequest) (*domain.CapacityOverride, error)
	Preview(ctx context.Context, id int64, patch domain.OverridePatch) (current, updated *domain.CapacityOverride, err error)
	Update(ctx context.Context, id int64, patch domain.OverridePatch) (*domain.CapacityOverride, error)
	Delete(ctx context.Context, id int64) error
	ListByRange(ctx context.Context, from, to time.Time, activeOnly bool) ([]*domain.CapacityOverride, error)
}

// ImpactChecker проверка конфликтов новой вместимости с бронированиями
type ImpactChecker interface {
	CheckImpactOfCapacityChange(ctx context.Context, req *models.ImpactRequest) (*models.ImpactResponse, error)
}

// BookingCounter занятость слотов за период
type BookingCounter interface {
	CountActiveGrouped(ctx context.Context, from, to time.Time, serviceID *int64) ([]domain.SlotOccupancy, error)
}

// SettingsService настройки магазина
type SettingsService interface {
	Rules(ctx context.Context) (*calendar.Rules, error)
	Update(ctx context.Context, patch domain.SettingsPatch) (*domain.ShopSettings, error)
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
