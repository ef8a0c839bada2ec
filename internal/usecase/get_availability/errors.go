package get_availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
)

var (
	// ErrInvalidDate возвращается, если дата не указана
	ErrInvalidDate = fmt.Errorf("get_availability: %w", domain.ErrInvalidDate)

	// ErrServiceNotFound возвращается, когда услуга из фильтра не найдена
	ErrServiceNotFound = fmt.Errorf("get_availability: %w: service", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
