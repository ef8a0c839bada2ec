package capacity

import (
	"time"

	"github.com/m04kA/SMC-SlotCapacity/internal/api/handlers"
	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/bookings/models"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/overrides"
	settingsModels "github.com/m04kA/SMC-SlotCapacity/internal/service/settings/models"
	"github.com/m04kA/SMC-SlotCapacity/internal/usecase/admin_capacity"
	"github.com/m04kA/SMC-SlotCapacity/pkg/types"
)

// CreateOverrideRequest HTTP request model.
// timeSlot не указан или "00:00" - override на весь день; isActive по умолчанию true.
type CreateOverrideRequest struct {
	Date        string  `json:"date"`
	TimeSlot    *string `json:"timeSlot,omitempty"`
	Capacity    int     `json:"capacity"`
	IsActive    *bool   `json:"isActive,omitempty"`
	Acknowledge bool    `json:"acknowledge"`
}

// UpdateOverrideRequest HTTP request model, частичное обновление
type UpdateOverrideRequest struct {
	Date        *string `json:"date,omitempty"`
	TimeSlot    *string `json:"timeSlot,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
	Acknowledge bool    `json:"acknowledge"`
}

// ImpactRequest HTTP request model проверки без изменений
type ImpactRequest struct {
	Date        string  `json:"date"`
	TimeSlot    *string `json:"timeSlot,omitempty"`
	NewCapacity int     `json:"newCapacity"`
}

// DefaultCapacityRequest HTTP request model
type DefaultCapacityRequest struct {
	CapacityMonWed *int `json:"capacityMonWed"`
	CapacityThuSun *int `json:"capacityThuSun"`
	Acknowledge    bool `json:"acknowledge"`
}

// OverrideResponse HTTP response model
type OverrideResponse struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	TimeSlot  string    `json:"timeSlot"`
	WholeDay  bool      `json:"wholeDay"`
	Capacity  int       `json:"capacity"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WarningResponse бронирования, не помещающиеся в новую вместимость
type WarningResponse struct {
	Message     string                   `json:"message"`
	BookedCount int                      `json:"bookedCount"`
	Impacts     []*models.ImpactResponse `json:"impacts"`
}

// ChangeResponse результат изменения вместимости.
// applied=false и warning: изменение не применено, повторите с acknowledge=true.
type ChangeResponse struct {
	Applied  bool                             `json:"applied"`
	Warning  *WarningResponse                 `json:"warning,omitempty"`
	Override *OverrideResponse                `json:"override,omitempty"`
	Settings *settingsModels.SettingsResponse `json:"settings,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервиса
func (r *CreateOverrideRequest) ToServiceRequest() (overrides.CreateRequest, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return overrides.CreateRequest{}, err
	}

	req := overrides.CreateRequest{
		Date:     date,
		TimeSlot: domain.WholeDaySlot,
		Capacity: r.Capacity,
		IsActive: true,
	}
	if r.TimeSlot != nil && *r.TimeSlot != "" {
		if req.TimeSlot, err = types.NewTimeStringFromString(*r.TimeSlot); err != nil {
			return overrides.CreateRequest{}, err
		}
	}
	if r.IsActive != nil {
		req.IsActive = *r.IsActive
	}
	return req, nil
}

// ToPatch конвертирует HTTP запрос в патч override
func (r *UpdateOverrideRequest) ToPatch() (domain.OverridePatch, error) {
	patch := domain.OverridePatch{
		Capacity: r.Capacity,
		IsActive: r.IsActive,
	}

	if r.Date != nil {
		date, err := handlers.ParseDate(*r.Date)
		if err != nil {
			return patch, err
		}
		patch.Date = &date
	}

	slot, err := handlers.ParseOptionalTime(r.TimeSlot)
	if err != nil {
		return patch, err
	}
	patch.TimeSlot = slot

	return patch, nil
}

// ToServiceRequest конвертирует HTTP запрос в запрос проверки
func (r *ImpactRequest) ToServiceRequest() (*models.ImpactRequest, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	slot, err := handlers.ParseOptionalTime(r.TimeSlot)
	if err != nil {
		return nil, err
	}

	return &models.ImpactRequest{
		Date:        date,
		TimeSlot:    slot,
		NewCapacity: r.NewCapacity,
	}, nil
}

// FromDomainOverride конвертирует domain модель в DTO
func FromDomainOverride(o *domain.CapacityOverride) *OverrideResponse {
	if o == nil {
		return nil
	}
	return &OverrideResponse{
		ID:        o.ID,
		Date:      o.Date.Format(domain.DateFormat),
		TimeSlot:  o.TimeSlot.String(),
		WholeDay:  o.IsWholeDay(),
		Capacity:  o.Capacity,
		IsActive:  o.IsActive,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

// FromDomainOverrideList конвертирует список overrides
func FromDomainOverrideList(list []*domain.CapacityOverride) []*OverrideResponse {
	resp := make([]*OverrideResponse, 0, len(list))
	for _, o := range list {
		resp = append(resp, FromDomainOverride(o))
	}
	return resp
}

// FromResult конвертирует результат use case
func FromResult(res *admin_capacity.Result) *ChangeResponse {
	resp := &ChangeResponse{
		Applied:  res.Applied,
		Override: FromDomainOverride(res.Override),
		Settings: settingsModels.FromDomainSettings(res.Settings),
	}
	if res.Warning != nil {
		resp.Warning = &WarningResponse{
			Message:     res.Warning.Message,
			BookedCount: res.Warning.BookedCount(),
			Impacts:     res.Warning.Impacts,
		}
	}
	return resp
}
