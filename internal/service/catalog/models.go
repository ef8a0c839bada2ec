package catalog

import "github.com/m04kA/SMC-SlotCapacity/internal/domain"

// CreateRequest запрос на создание услуги
type CreateRequest struct {
	Name            string
	DurationMinutes int
	Price           *float64
	IsActive        bool
	DisplayOrder    int
	IsCallOut       bool
}

// UpdateRequest частичное обновление услуги, nil поля не меняются
type UpdateRequest struct {
	Name            *string
	DurationMinutes *int
	Price           *float64
	ClearPrice      bool // сбросить цену в NULL
	IsActive        *bool
	DisplayOrder    *int
	IsCallOut       *bool
}

// IsEmpty true, если обновлять нечего
func (r *UpdateRequest) IsEmpty() bool {
	return r.Name == nil && r.DurationMinutes == nil && r.Price == nil && !r.ClearPrice &&
		r.IsActive == nil && r.DisplayOrder == nil && r.IsCallOut == nil
}

func (r *UpdateRequest) apply(s domain.Service) domain.Service {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.DurationMinutes != nil {
		s.DurationMinutes = *r.DurationMinutes
	}
	if r.ClearPrice {
		s.Price = nil
	} else if r.Price != nil {
		price := *r.Price
		s.Price = &price
	}
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
	if r.DisplayOrder != nil {
		s.DisplayOrder = *r.DisplayOrder
	}
	if r.IsCallOut != nil {
		s.IsCallOut = *r.IsCallOut
	}
	return s
}
