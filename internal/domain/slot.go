package domain

import "github.com/m04kA/SMC-SlotCapacity/pkg/types"

// SlotStatus derived availability status of a slot
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotLimited   SlotStatus = "limited"
	SlotFull      SlotStatus = "full"
	SlotBlocked   SlotStatus = "blocked"
)

// TimeSlot is computed on every availability request and never stored
type TimeSlot struct {
	Time           types.TimeString
	TotalCapacity  int
	BookedCount    int
	AvailableCount int
	IsAvailable    bool
	Status         SlotStatus
}

// NewTimeSlot derives counters and status from capacity and bookings
func NewTimeSlot(t types.TimeString, total, booked int, isAvailable bool) TimeSlot {
	available := total - booked
	if available < 0 {
		available = 0
	}

	slot := TimeSlot{
		Time:           t,
		TotalCapacity:  total,
		BookedCount:    booked,
		AvailableCount: available,
		IsAvailable:    isAvailable,
	}

	switch {
	case !isAvailable:
		slot.Status = SlotBlocked
	case available == 0:
		slot.Status = SlotFull
	case available == 1:
		slot.Status = SlotLimited
	default:
		slot.Status = SlotAvailable
	}

	return slot
}
