package get_booking_by_ticket

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotCapacity/internal/api/handlers"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/bookings"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/bookings/models"
)

const (
	msgInvalidTicket = "некорректный номер билета, ожидается TKT-YYMMDD-XXXXXXXX"
	msgNotFound      = "бронирование не найдено"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/ticket/{ticket}
// Ответ без контактов и служебных полей: номер билета знает любой, кому его переслали
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ticketNumber := mux.Vars(r)["ticket"]

	booking, err := h.service.GetByTicket(r.Context(), ticketNumber)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings/ticket/{ticket} - Invalid ticket: %q", ticketNumber)
			handlers.RespondBadRequest(w, msgInvalidTicket)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/ticket/{ticket} - Booking not found: ticket=%s", ticketNumber)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /bookings/ticket/{ticket} - Failed to get booking: ticket=%s, error=%v", ticketNumber, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/ticket/{ticket} - Booking retrieved successfully: ticket=%s", booking.TicketNumber)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBookingPublic(booking))
}
