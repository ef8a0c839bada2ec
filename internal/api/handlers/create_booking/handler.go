package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotCapacity/internal/api/handlers"
	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	createBooking "github.com/m04kA/SMC-SlotCapacity/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgSlotFull           = "в выбранном слоте нет свободных мест"
	msgServiceNotFound    = "услуга не найдена"
	msgInvalidTimeSlot    = "выбранное время не входит в расписание"
	msgNotBookable        = "дата вне окна бронирования или слишком поздно для записи"
	msgInvalidData        = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	source  domain.BookingSource
	route   string
	logger  Logger
}

// NewHandler POST /api/v1/bookings (публичная форма)
func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		source:  domain.SourcePublic,
		route:   "POST /bookings",
		logger:  logger,
	}
}

// NewAdminHandler POST /api/v1/admin/bookings: без окна бронирования, с admin-полями
func NewAdminHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		source:  domain.SourceAdmin,
		route:   "POST /admin/bookings",
		logger:  logger,
	}
}

// Handle создает бронирование
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", h.route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(h.source)
	if err != nil {
		h.logger.Warn("%s - Failed to parse request: %v", h.route, err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotFull):
			h.logger.Warn("%s - Slot full: date=%s, time=%s", h.route, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("%s - Service not found: service_id=%v", h.route, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("%s - Invalid time slot: date=%s, time=%s", h.route, req.Date, req.Time)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("%s - Not bookable: date=%s, time=%s, error=%v", h.route, req.Date, req.Time, err)
			handlers.RespondBadRequest(w, msgNotBookable)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("%s - Invalid data: %v", h.route, err)
			handlers.RespondError(w, http.StatusBadRequest, msgInvalidData+": "+err.Error())

		default:
			h.logger.Error("%s - Failed to create booking: date=%s, time=%s, error=%v", h.route, req.Date, req.Time, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Booking created successfully: booking_id=%d, ticket=%s, status=%s",
		h.route, result.Booking.ID, result.Booking.TicketNumber, result.Booking.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
