package cancel_booking

import (
	"github.com/m04kA/SMC-SlotCapacity/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса.
// Отменяет сам клиент: бронирование должно принадлежать email из токена.
func (r *CancelBookingRequest) ToServiceRequest(email string) *models.CancelRequest {
	return &models.CancelRequest{
		Reason:        r.Reason,
		CancelledBy:   email,
		CustomerEmail: &email,
	}
}
