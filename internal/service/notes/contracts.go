package notes

import (
	"context"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
)

// NoteRepository интерфейс репозитория заметок о клиентах
type NoteRepository interface {
	Create(ctx context.Context, n *domain.CustomerNote) (*domain.CustomerNote, error)
	ListByEmail(ctx context.Context, email string) ([]*domain.CustomerNote, error)
	UpdateText(ctx context.Context, id int64, text string) (*domain.CustomerNote, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
