package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Date time.Time        // Дата записи (без времени)
	Time types.TimeString // Время начала слота, например "14:00"

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	ServiceID         *int64  // Услуга (опционально)
	BookingForName    *string // Запись на другого человека
	SpecialRequest    *string
	AdminNotes        *string // Только для админа
	InspirationPhotos []string

	Source           domain.BookingSource // public или admin
	IsPrepaid        bool                 // Только для админа
	SkipNotification bool                 // Только для админа
	OverrideCapacity bool                 // Только для админа: записать сверх вместимости
}

// IsAdmin true для бронирования из админки
func (r *Request) IsAdmin() bool {
	return r.Source == domain.SourceAdmin
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
	Slot    domain.TimeSlot // Состояние слота до вставки
}
