package domain

import "github.com/m04kA/SMC-SlotCapacity/pkg/types"

// Default configuration values
const (
	DefaultCapacityMonWed      = 2
	DefaultCapacityThuSun      = 3
	DefaultBookingWindowDays   = 60
	DefaultSameDayCutoffHours  = 2
	DefaultSlotDurationMinutes = 60

	DefaultOpenTime  types.TimeString = "09:00"
	DefaultCloseTime types.TimeString = "18:00"
)

// Business validation constants
const (
	MinSlotDurationMinutes      = 5
	MaxSlotDurationMinutes      = 480 // 8 hours
	MaxCapacity                 = 100
	MaxBookingWindowDays        = 365
	MaxSameDayCutoffHours       = 72
	MaxNameLength               = 120
	MaxSpecialRequestLength     = 1000
	MaxAdminNotesLength         = 2000
	MaxCancellationReasonLength = 500
	MaxNoteLength               = 4000
	MaxInspirationPhotos        = 10
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// NoShowReason cancellation reason used for no-show bookkeeping
const NoShowReason = "no_show"

// InactiveStatuses статусы, которые не занимают место в слоте
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}

// ActiveStatuses статусы, которые занимают место в слоте
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
