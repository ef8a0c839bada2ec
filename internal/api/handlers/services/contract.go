package services

import (
	"context"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/catalog"
)

type CatalogService interface {
	List(ctx context.Context, activeOnly bool) ([]*domain.Service, error)
	Create(ctx context.Context, req *catalog.CreateRequest) (*domain.Service, error)
	Update(ctx context.Context, id int64, req *catalog.UpdateRequest) (*domain.Service, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
