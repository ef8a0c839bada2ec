package settings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных значениях настроек
	ErrInvalidInput = fmt.Errorf("settings: %w", domain.ErrValidation)

	// ErrStrandedBookings возвращается, если новая сетка слотов оставляет будущие записи вне сетки
	ErrStrandedBookings = fmt.Errorf("settings: %w: upcoming bookings outside new slot grid", domain.ErrScheduleConflict)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("settings: internal error")
)
