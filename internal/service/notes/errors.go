package notes

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
)

var (
	// ErrNoteNotFound возвращается, когда заметка не найдена
	ErrNoteNotFound = fmt.Errorf("notes: %w: customer note", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("notes: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("notes: internal error")
)
