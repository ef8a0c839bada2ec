package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotCapacity/internal/api/handlers"
	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-SlotCapacity/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SlotCapacity/pkg/types"
)

var errInvalidTime = errors.New("invalid time")

// CreateBookingRequest HTTP request model.
// adminNotes, isPrepaid, skipNotification и overrideCapacity принимаются только в админке.
type CreateBookingRequest struct {
	Date              string   `json:"date"` // "2024-06-01"
	Time              string   `json:"time"` // "14:00"
	CustomerName      string   `json:"customerName"`
	CustomerEmail     string   `json:"customerEmail"`
	CustomerPhone     string   `json:"customerPhone"`
	ServiceID         *int64   `json:"serviceId,omitempty"`
	BookingForName    *string  `json:"bookingForName,omitempty"`
	SpecialRequest    *string  `json:"specialRequest,omitempty"`
	InspirationPhotos []string `json:"inspirationPhotos,omitempty"`

	AdminNotes       *string `json:"adminNotes,omitempty"`
	IsPrepaid        bool    `json:"isPrepaid,omitempty"`
	SkipNotification bool    `json:"skipNotification,omitempty"`
	OverrideCapacity bool    `json:"overrideCapacity,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Booking *models.BookingResponse `json:"booking"`
	Slot    SlotState               `json:"slot"`
}

// SlotState состояние слота на момент записи (до вставки)
type SlotState struct {
	Time           string `json:"time"`
	TotalCapacity  int    `json:"totalCapacity"`
	BookedCount    int    `json:"bookedCount"`
	AvailableCount int    `json:"availableCount"`
	Status         string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(source domain.BookingSource) (*createBooking.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	t, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	return &createBooking.Request{
		Date:              date,
		Time:              t,
		CustomerName:      r.CustomerName,
		CustomerEmail:     r.CustomerEmail,
		CustomerPhone:     r.CustomerPhone,
		ServiceID:         r.ServiceID,
		BookingForName:    r.BookingForName,
		SpecialRequest:    r.SpecialRequest,
		AdminNotes:        r.AdminNotes,
		InspirationPhotos: r.InspirationPhotos,
		Source:            source,
		IsPrepaid:         r.IsPrepaid,
		SkipNotification:  r.SkipNotification,
		OverrideCapacity:  r.OverrideCapacity,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		Booking: models.FromDomainBooking(resp.Booking),
		Slot: SlotState{
			Time:           resp.Slot.Time.String(),
			TotalCapacity:  resp.Slot.TotalCapacity,
			BookedCount:    resp.Slot.BookedCount,
			AvailableCount: resp.Slot.AvailableCount,
			Status:         string(resp.Slot.Status),
		},
	}
}
