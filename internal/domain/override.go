package domain

import (
	"time"

	"github.com/m04kA/SMC-SlotCapacity/pkg/types"
)

// WholeDaySlot marks an override that applies to every slot of the date
const WholeDaySlot types.TimeString = "00:00"

// CapacityOverride admin-defined exception to the weekday capacity rule.
// At most one active override exists per (Date, TimeSlot).
type CapacityOverride struct {
	ID        int64
	Date      time.Time
	TimeSlot  types.TimeString
	Capacity  int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsWholeDay returns true for day-level overrides
func (o *CapacityOverride) IsWholeDay() bool {
	return o.TimeSlot == WholeDaySlot
}

// IsBlocking returns true if the override closes the slot (or day) for booking
func (o *CapacityOverride) IsBlocking() bool {
	return o.IsActive && o.Capacity == 0
}

// OverridePatch partial update; nil fields are left unchanged
type OverridePatch struct {
	Date     *time.Time
	TimeSlot *types.TimeString
	Capacity *int
	IsActive *bool
}

// IsEmpty returns true if nothing is set
func (p OverridePatch) IsEmpty() bool {
	return p.Date == nil && p.TimeSlot == nil && p.Capacity == nil && p.IsActive == nil
}

// Apply returns a copy of o with the patch applied
func (p OverridePatch) Apply(o CapacityOverride) CapacityOverride {
	if p.Date != nil {
		o.Date = *p.Date
	}
	if p.TimeSlot != nil {
		o.TimeSlot = *p.TimeSlot
	}
	if p.Capacity != nil {
		o.Capacity = *p.Capacity
	}
	if p.IsActive != nil {
		o.IsActive = *p.IsActive
	}
	return o
}

// EffectiveCapacity capacity of one slot together with the rule it came from
type EffectiveCapacity struct {
	Capacity int
	Source   CapacitySource
	Override *CapacityOverride // nil when Source is CapacitySourceDefault
}

// CapacitySource shows which rule defined a slot's capacity
type CapacitySource string

const (
	CapacitySourceDefault      CapacitySource = "default"
	CapacitySourceDayOverride  CapacitySource = "day_override"
	CapacitySourceSlotOverride CapacitySource = "slot_override"
)

// IsBlocked returns true if an override closed the slot
func (c EffectiveCapacity) IsBlocked() bool {
	return c.Override != nil && c.Override.IsBlocking()
}
