package update_settings

import (
	"github.com/m04kA/SMC-SlotCapacity/internal/api/handlers"
	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
)

// UpdateSettingsRequest HTTP request model.
// Вместимость меняется отдельно через PUT /admin/settings/capacity с проверкой конфликтов.
type UpdateSettingsRequest struct {
	BookingWindowDays   *int    `json:"bookingWindowDays,omitempty"`
	SameDayCutoffHours  *int    `json:"sameDayCutoffHours,omitempty"`
	OpenTime            *string `json:"openTime,omitempty"`
	CloseTime           *string `json:"closeTime,omitempty"`
	SlotDurationMinutes *int    `json:"slotDurationMinutes,omitempty"`
	RequireConfirmation *bool   `json:"requireConfirmation,omitempty"`
}

// ToServicePatch конвертирует HTTP request в патч настроек
func (r *UpdateSettingsRequest) ToServicePatch() (domain.SettingsPatch, error) {
	openTime, err := handlers.ParseOptionalTime(r.OpenTime)
	if err != nil {
		return domain.SettingsPatch{}, err
	}

	closeTime, err := handlers.ParseOptionalTime(r.CloseTime)
	if err != nil {
		return domain.SettingsPatch{}, err
	}

	return domain.SettingsPatch{
		BookingWindowDays:   r.BookingWindowDays,
		SameDayCutoffHours:  r.SameDayCutoffHours,
		OpenTime:            openTime,
		CloseTime:           closeTime,
		SlotDurationMinutes: r.SlotDurationMinutes,
		RequireConfirmation: r.RequireConfirmation,
	}, nil
}
