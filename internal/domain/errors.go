package domain

import (
	"errors"
	"fmt"
)

// Базовая таксономия ошибок движка. Ошибки слоёв оборачивают их через %w,
// поэтому errors.Is(err, domain.ErrSlotFull) работает на любом уровне.
var (
	ErrValidation        = errors.New("validation error")
	ErrInvalidDate       = errors.New("invalid date")
	ErrNotFound          = errors.New("not found")
	ErrSlotFull          = errors.New("slot full")
	ErrDuplicateOverride = errors.New("duplicate override")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrScheduleConflict  = errors.New("schedule conflict")

	// ErrAlreadyTerminal тоже является ErrInvalidTransition
	ErrAlreadyTerminal = fmt.Errorf("%w: booking already in terminal state", ErrInvalidTransition)
)
