package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelRequest запрос на отмену бронирования.
// CustomerEmail задаётся, когда отменяет сам клиент: тогда бронирование должно быть его.
type CancelRequest struct {
	Reason        string
	CancelledBy   string
	CustomerEmail *string
}

// ListRequest фильтр отчёта по бронированиям
type ListRequest struct {
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *string
	ServiceID       *int64
	CustomerEmail   *string
	IncludeInactive bool
	Limit           uint64
	Offset          uint64
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		ServiceID:       r.ServiceID,
		CustomerEmail:   r.CustomerEmail,
		IncludeInactive: r.IncludeInactive,
		Limit:           r.Limit,
		Offset:          r.Offset,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// ImpactRequest проверка влияния изменения вместимости на существующие бронирования.
// TimeSlot == nil или "00:00" - изменение на весь день.
// ExcludeSlots - слоты дня со своим override: дневное изменение их не затрагивает.
type ImpactRequest struct {
	Date         time.Time
	TimeSlot     *types.TimeString
	NewCapacity  int
	ExcludeSlots []types.TimeString
}

// IsWholeDay true, если изменение касается всего дня
func (r *ImpactRequest) IsWholeDay() bool {
	return r.TimeSlot == nil || *r.TimeSlot == domain.WholeDaySlot
}

// Response модели

// SlotImpact слот, где бронирований больше новой вместимости
type SlotImpact struct {
	Time        string `json:"time"`
	BookedCount int    `json:"bookedCount"`
}

// ImpactResponse результат проверки: Conflict - бронирований больше новой вместимости.
// Для изменения на весь день BookedCount - максимум по слотам.
type ImpactResponse struct {
	Date        string       `json:"date"`
	TimeSlot    *string      `json:"timeSlot,omitempty"`
	NewCapacity int          `json:"newCapacity"`
	Conflict    bool         `json:"conflict"`
	BookedCount int          `json:"bookedCount"`
	Slots       []SlotImpact `json:"slots"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                int64    `json:"id"`
	TicketNumber      string   `json:"ticketNumber"`
	Status            string   `json:"status"`
	Source            string   `json:"source"`
	AppointmentDate   string   `json:"appointmentDate"` // "2024-06-01"
	AppointmentTime   string   `json:"appointmentTime"` // "14:00"
	SlotDuration      int      `json:"slotDuration"`
	CustomerName      string   `json:"customerName"`
	CustomerEmail     string   `json:"customerEmail"`
	CustomerPhone     string   `json:"customerPhone"`
	ServiceID         *int64   `json:"serviceId,omitempty"`
	BookingForName    *string  `json:"bookingForName,omitempty"`
	SpecialRequest    *string  `json:"specialRequest,omitempty"`
	AdminNotes        *string  `json:"adminNotes,omitempty"`
	InspirationPhotos []string `json:"inspirationPhotos"`
	IsPrepaid         bool     `json:"isPrepaid"`
	SkipNotification  bool     `json:"skipNotification"`
	OverCapacity      bool     `json:"overCapacity"`

	ConfirmedAt        *string `json:"confirmedAt,omitempty"` // ISO 8601 format
	CompletedAt        *string `json:"completedAt,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledBy        *string `json:"cancelledBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PublicBookingResponse ответ для поиска по номеру билета: без служебных полей
type PublicBookingResponse struct {
	TicketNumber    string  `json:"ticketNumber"`
	Status          string  `json:"status"`
	AppointmentDate string  `json:"appointmentDate"`
	AppointmentTime string  `json:"appointmentTime"`
	SlotDuration    int     `json:"slotDuration"`
	CustomerName    string  `json:"customerName"`
	ServiceID       *int64  `json:"serviceId,omitempty"`
	BookingForName  *string `json:"bookingForName,omitempty"`
	CancelledAt     *string `json:"cancelledAt,omitempty"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	photos := b.InspirationPhotos
	if photos == nil {
		photos = []string{}
	}

	return &BookingResponse{
		ID:                 b.ID,
		TicketNumber:       b.TicketNumber,
		Status:             string(b.Status),
		Source:             string(b.Source),
		AppointmentDate:    b.AppointmentDate.Format(domain.DateFormat),
		AppointmentTime:    b.AppointmentTime.String(),
		SlotDuration:       b.SlotDuration,
		CustomerName:       b.CustomerName,
		CustomerEmail:      b.CustomerEmail,
		CustomerPhone:      b.CustomerPhone,
		ServiceID:          b.ServiceID,
		BookingForName:     b.BookingForName,
		SpecialRequest:     b.SpecialRequest,
		AdminNotes:         b.AdminNotes,
		InspirationPhotos:  photos,
		IsPrepaid:          b.IsPrepaid,
		SkipNotification:   b.SkipNotification,
		OverCapacity:       b.OverCapacity,
		ConfirmedAt:        formatTime(b.ConfirmedAt),
		CompletedAt:        formatTime(b.CompletedAt),
		CancelledAt:        formatTime(b.CancelledAt),
		CancellationReason: b.CancellationReason,
		CancelledBy:        b.CancelledBy,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookingPublic конвертирует domain модель в публичный DTO
func FromDomainBookingPublic(b *domain.Booking) *PublicBookingResponse {
	if b == nil {
		return nil
	}

	return &PublicBookingResponse{
		TicketNumber:    b.TicketNumber,
		Status:          string(b.Status),
		AppointmentDate: b.AppointmentDate.Format(domain.DateFormat),
		AppointmentTime: b.AppointmentTime.String(),
		SlotDuration:    b.SlotDuration,
		CustomerName:    b.CustomerName,
		ServiceID:       b.ServiceID,
		BookingForName:  b.BookingForName,
		CancelledAt:     formatTime(b.CancelledAt),
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// formatTime конвертирует время в строку ISO 8601
func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
