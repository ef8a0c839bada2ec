package booking_action

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotCapacity/internal/api/handlers"
	"github.com/m04kA/SMC-SlotCapacity/internal/api/middleware"
	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/bookings"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgUnknownAction      = "неизвестное действие, ожидается confirm, complete, no-show или cancel"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgAlreadyTerminal    = "бронирование уже завершено или отменено"
	msgInvalidTransition  = "переход недопустим из текущего статуса"
	msgInvalidData        = "некорректные данные"
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

// Handle PATCH /api/v1/admin/bookings/{bookingId}/{action}
// action: confirm | complete | no-show | cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/{action} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	action := mux.Vars(r)["action"]

	// Кто выполнил действие: email администратора из токена
	actor := "admin"
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		actor = claims.Email
	}

	var booking *domain.Booking
	switch action {
	case ActionConfirm:
		booking, err = h.service.Confirm(r.Context(), bookingID)
	case ActionComplete:
		booking, err = h.service.Complete(r.Context(), bookingID)
	case ActionNoShow:
		booking, err = h.service.MarkNoShow(r.Context(), bookingID, actor)
	case ActionCancel:
		var req ActionRequest
		if decodeErr := handlers.DecodeJSON(r, &req); decodeErr != nil && !errors.Is(decodeErr, io.EOF) {
			h.logger.Warn("PATCH /admin/bookings/{id}/cancel - Invalid request body: %v", decodeErr)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
		booking, err = h.service.Cancel(r.Context(), bookingID, &models.CancelRequest{
			Reason:      req.Reason,
			CancelledBy: actor,
		})
	default:
		h.logger.Warn("PATCH /admin/bookings/{id}/{action} - Unknown action: %q", action)
		handlers.RespondBadRequest(w, msgUnknownAction)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /admin/bookings/{id}/%s - Booking not found: booking_id=%d", action, bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrAlreadyTerminal):
			h.logger.Warn("PATCH /admin/bookings/{id}/%s - Already terminal: booking_id=%d", action, bookingID)
			handlers.RespondConflict(w, msgAlreadyTerminal)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("PATCH /admin/bookings/{id}/%s - Invalid transition: booking_id=%d, error=%v", action, bookingID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/bookings/{id}/%s - Invalid data: booking_id=%d, error=%v", action, bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PATCH /admin/bookings/{id}/%s - Failed: booking_id=%d, error=%v", action, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/bookings/{id}/%s - Done: booking_id=%d, status=%s, by=%s",
		action, bookingID, booking.Status, actor)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(booking))
}
