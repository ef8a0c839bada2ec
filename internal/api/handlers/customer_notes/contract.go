package customer_notes

import (
	"context"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
)

type NotesService interface {
	List(ctx context.Context, email string) ([]*domain.CustomerNote, error)
	Create(ctx context.Context, email, text, createdBy string) (*domain.CustomerNote, error)
	Update(ctx context.Context, id int64, text string) (*domain.CustomerNote, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
