package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("bookings: %w: booking", domain.ErrNotFound)

	// ErrAlreadyTerminal возвращается при попытке перевести завершённое или отменённое бронирование.
	// Совпадает также с domain.ErrInvalidTransition.
	ErrAlreadyTerminal = fmt.Errorf("bookings: %w", domain.ErrAlreadyTerminal)

	// ErrInvalidTransition возвращается, когда переход недопустим из текущего статуса
	ErrInvalidTransition = fmt.Errorf("bookings: %w", domain.ErrInvalidTransition)

	// ErrAccessDenied возвращается, когда клиент пытается отменить чужое бронирование
	ErrAccessDenied = errors.New("bookings: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("bookings: %w", domain.ErrValidation)

	// ErrInvalidDate возвращается при некорректной дате или периоде
	ErrInvalidDate = fmt.Errorf("bookings: %w", domain.ErrInvalidDate)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
