package overrides

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
)

var (
	// ErrOverrideNotFound возвращается, когда override не найден
	ErrOverrideNotFound = fmt.Errorf("overrides: %w: capacity override", domain.ErrNotFound)

	// ErrDuplicateOverride возвращается, когда на (date, time_slot) уже есть активный override
	ErrDuplicateOverride = fmt.Errorf("overrides: %w", domain.ErrDuplicateOverride)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("overrides: %w", domain.ErrValidation)

	// ErrInvalidDate возвращается при пустой дате
	ErrInvalidDate = fmt.Errorf("overrides: %w", domain.ErrInvalidDate)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("overrides: internal error")
)
