package models

import (
	"time"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
)

// SettingsResponse ответ с настройками магазина
type SettingsResponse struct {
	CapacityMonWed      int       `json:"capacityMonWed"`
	CapacityThuSun      int       `json:"capacityThuSun"`
	BookingWindowDays   int       `json:"bookingWindowDays"`
	SameDayCutoffHours  int       `json:"sameDayCutoffHours"`
	OpenTime            string    `json:"openTime"`  // "10:00"
	CloseTime           string    `json:"closeTime"` // "18:00"
	SlotDurationMinutes int       `json:"slotDurationMinutes"`
	RequireConfirmation bool      `json:"requireConfirmation"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.ShopSettings) *SettingsResponse {
	if s == nil {
		return nil
	}
	return &SettingsResponse{
		CapacityMonWed:      s.Capacity.MonWed,
		CapacityThuSun:      s.Capacity.ThuSun,
		BookingWindowDays:   s.BookingWindowDays,
		SameDayCutoffHours:  s.SameDayCutoffHours,
		OpenTime:            s.OpenTime.String(),
		CloseTime:           s.CloseTime.String(),
		SlotDurationMinutes: s.SlotDurationMinutes,
		RequireConfirmation: s.RequireConfirmation,
		UpdatedAt:           s.UpdatedAt,
	}
}
