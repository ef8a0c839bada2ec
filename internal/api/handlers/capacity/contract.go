package capacity

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/bookings/models"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/overrides"
	"github.com/m04kA/SMC-SlotCapacity/internal/usecase/admin_capacity"
)

type CapacityUseCase interface {
	CreateOverride(ctx context.Context, req overrides.CreateRequest, acknowledge bool) (*admin_capacity.Result, error)
	UpdateOverride(ctx context.Context, id int64, patch domain.OverridePatch, acknowledge bool) (*admin_capacity.Result, error)
	DeleteOverride(ctx context.Context, id int64) error
	UpdateDefaultCapacity(ctx context.Context, monWed, thuSun int, acknowledge bool) (*admin_capacity.Result, error)
}

type OverrideLister interface {
	ListByRange(ctx context.Context, from, to time.Time, activeOnly bool) ([]*domain.CapacityOverride, error)
}

type ImpactChecker interface {
	CheckImpactOfCapacityChange(ctx context.Context, req *models.ImpactRequest) (*models.ImpactResponse, error)
}

type TimeProvider interface {
	Now() time.Time
}

type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time { return time.Now() }

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
