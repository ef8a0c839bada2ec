package get_settings

import (
	"context"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
)

type SettingsService interface {
	Get(ctx context.Context) (*domain.ShopSettings, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
