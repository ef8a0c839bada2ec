package domain

import (
	"time"

	"github.com/m04kA/SMC-SlotCapacity/pkg/types"
)

// CapacityRule default per-slot capacity by weekday bucket
type CapacityRule struct {
	MonWed int // Monday - Wednesday
	ThuSun int // Thursday - Sunday
}

// ForWeekday returns the bucket value for the weekday
func (r CapacityRule) ForWeekday(d time.Weekday) int {
	switch d {
	case time.Monday, time.Tuesday, time.Wednesday:
		return r.MonWed
	default:
		return r.ThuSun
	}
}

// ShopSettings shop-wide scheduling parameters (singleton row)
type ShopSettings struct {
	Capacity            CapacityRule
	BookingWindowDays   int // how far ahead public bookings are accepted
	SameDayCutoffHours  int // minimal notice for same-day bookings
	OpenTime            types.TimeString
	CloseTime           types.TimeString
	SlotDurationMinutes int
	RequireConfirmation bool // pending bookings need an explicit confirm before complete
	UpdatedAt           time.Time
}

// SettingsPatch partial settings update
type SettingsPatch struct {
	CapacityMonWed      *int
	CapacityThuSun      *int
	BookingWindowDays   *int
	SameDayCutoffHours  *int
	OpenTime            *types.TimeString
	CloseTime           *types.TimeString
	SlotDurationMinutes *int
	RequireConfirmation *bool
}

// Apply returns a copy of s with the patch applied
func (p SettingsPatch) Apply(s ShopSettings) ShopSettings {
	if p.CapacityMonWed != nil {
		s.Capacity.MonWed = *p.CapacityMonWed
	}
	if p.CapacityThuSun != nil {
		s.Capacity.ThuSun = *p.CapacityThuSun
	}
	if p.BookingWindowDays != nil {
		s.BookingWindowDays = *p.BookingWindowDays
	}
	if p.SameDayCutoffHours != nil {
		s.SameDayCutoffHours = *p.SameDayCutoffHours
	}
	if p.OpenTime != nil {
		s.OpenTime = *p.OpenTime
	}
	if p.CloseTime != nil {
		s.CloseTime = *p.CloseTime
	}
	if p.SlotDurationMinutes != nil {
		s.SlotDurationMinutes = *p.SlotDurationMinutes
	}
	if p.RequireConfirmation != nil {
		s.RequireConfirmation = *p.RequireConfirmation
	}
	return s
}

// DefaultSettings used when the settings row has not been created yet
func DefaultSettings() ShopSettings {
	return ShopSettings{
		Capacity: CapacityRule{
			MonWed: DefaultCapacityMonWed,
			ThuSun: DefaultCapacityThuSun,
		},
		BookingWindowDays:   DefaultBookingWindowDays,
		SameDayCutoffHours:  DefaultSameDayCutoffHours,
		OpenTime:            DefaultOpenTime,
		CloseTime:           DefaultCloseTime,
		SlotDurationMinutes: DefaultSlotDurationMinutes,
		RequireConfirmation: false,
	}
}
