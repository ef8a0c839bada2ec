package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или выключена
	ErrServiceNotFound = fmt.Errorf("create_booking: %w: service", domain.ErrNotFound)

	// ErrInvalidDate возвращается, когда дата вне окна бронирования или слот уже закрыт отсечкой
	ErrInvalidDate = fmt.Errorf("create_booking: %w", domain.ErrInvalidDate)

	// ErrInvalidTimeSlot возвращается, когда время не входит в сетку слотов рабочего дня
	ErrInvalidTimeSlot = fmt.Errorf("create_booking: %w: time is not a configured slot", domain.ErrValidation)

	// ErrSlotFull возвращается, когда свободных мест нет, слот заблокирован или занят другим запросом
	ErrSlotFull = fmt.Errorf("create_booking: %w", domain.ErrSlotFull)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_booking: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
