package services

import (
	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/catalog"
)

// CreateServiceRequest HTTP request model
type CreateServiceRequest struct {
	Name            string   `json:"name"`
	DurationMinutes int      `json:"durationMinutes"`
	Price           *float64 `json:"price,omitempty"`
	IsActive        *bool    `json:"isActive,omitempty"` // по умолчанию true
	DisplayOrder    int      `json:"displayOrder"`
	IsCallOut       bool     `json:"isCallOut"`
}

// UpdateServiceRequest HTTP request model
type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty"`
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	ClearPrice      bool     `json:"clearPrice,omitempty"`
	IsActive        *bool    `json:"isActive,omitempty"`
	DisplayOrder    *int     `json:"displayOrder,omitempty"`
	IsCallOut       *bool    `json:"isCallOut,omitempty"`
}

// ServiceResponse HTTP response model
type ServiceResponse struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"durationMinutes"`
	Price           *float64 `json:"price,omitempty"`
	IsActive        bool     `json:"isActive"`
	DisplayOrder    int      `json:"displayOrder"`
	IsCallOut       bool     `json:"isCallOut"`
}

func (r *CreateServiceRequest) ToServiceRequest() *catalog.CreateRequest {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &catalog.CreateRequest{
		Name:            r.Name,
		DurationMinutes: r.DurationMinutes,
		Price:           r.Price,
		IsActive:        active,
		DisplayOrder:    r.DisplayOrder,
		IsCallOut:       r.IsCallOut,
	}
}

func (r *UpdateServiceRequest) ToServiceRequest() *catalog.UpdateRequest {
	return &catalog.UpdateRequest{
		Name:            r.Name,
		DurationMinutes: r.DurationMinutes,
		Price:           r.Price,
		ClearPrice:      r.ClearPrice,
		IsActive:        r.IsActive,
		DisplayOrder:    r.DisplayOrder,
		IsCallOut:       r.IsCallOut,
	}
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		IsActive:        s.IsActive,
		DisplayOrder:    s.DisplayOrder,
		IsCallOut:       s.IsCallOut,
	}
}
