package capacity

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotCapacity/internal/api/handlers"
	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/calendar"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidOverrideID  = "некорректный ID override"
	msgInvalidDateOrTime  = "некорректная дата (YYYY-MM-DD) или время (HH:MM)"
	msgInvalidRange       = "некорректный период"
	msgInvalidData        = "некорректные данные вместимости"
	msgMissingCapacity    = "нужно указать capacityMonWed и capacityThuSun"
	msgNotFound           = "override не найден"
	msgDuplicate          = "на эту дату и слот уже есть активный override"

	defaultListDays = 30
)

// Handler управление вместимостью из админки: overrides, вместимость по умолчанию, проверка влияния
type Handler struct {
	useCase      CapacityUseCase
	overrides    OverrideLister
	impact       ImpactChecker
	timeProvider TimeProvider
	logger       Logger
}

func NewHandler(useCase CapacityUseCase, overrides OverrideLister, impact ImpactChecker, logger Logger) *Handler {
	return &Handler{
		useCase:      useCase,
		overrides:    overrides,
		impact:       impact,
		timeProvider: RealTimeProvider{},
		logger:       logger,
	}
}

// ListOverrides GET /api/v1/admin/capacity-overrides
// Query params: from, to (YYYY-MM-DD, по умолчанию ближайшие 30 дней), activeOnly
func (h *Handler) ListOverrides(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	from, err := handlers.ParseOptionalDate(q.Get("from"))
	if err != nil {
		h.logger.Warn("GET /admin/capacity-overrides - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}
	to, err := handlers.ParseOptionalDate(q.Get("to"))
	if err != nil {
		h.logger.Warn("GET /admin/capacity-overrides - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	start := calendar.Day(h.timeProvider.Now())
	if from != nil {
		start = *from
	}
	end := start.AddDate(0, 0, defaultListDays)
	if to != nil {
		end = *to
	}
	activeOnly := q.Get("activeOnly") == "true"

	list, err := h.overrides.ListByRange(r.Context(), start, end, activeOnly)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDate) {
			h.logger.Warn("GET /admin/capacity-overrides - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}
		h.logger.Error("GET /admin/capacity-overrides - Failed to list overrides: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/capacity-overrides - Overrides retrieved successfully: count=%d", len(list))
	handlers.RespondJSON(w, http.StatusOK, FromDomainOverrideList(list))
}

// CreateOverride POST /api/v1/admin/capacity-overrides
func (h *Handler) CreateOverride(w http.ResponseWriter, r *http.Request) {
	var req CreateOverrideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/capacity-overrides - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /admin/capacity-overrides - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.CreateOverride(r.Context(), serviceReq, req.Acknowledge)
	if err != nil {
		h.respondError(w, "POST /admin/capacity-overrides", err)
		return
	}

	status := http.StatusOK
	if result.Applied {
		status = http.StatusCreated
		h.logger.Info("POST /admin/capacity-overrides - Override created: id=%d", result.Override.ID)
	} else {
		h.logger.Info("POST /admin/capacity-overrides - Not applied, warning returned")
	}
	handlers.RespondJSON(w, status, FromResult(result))
}

// UpdateOverride PATCH /api/v1/admin/capacity-overrides/{overrideId}
func (h *Handler) UpdateOverride(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "overrideId")
	if err != nil {
		h.logger.Warn("PATCH /admin/capacity-overrides/{id} - Invalid override ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOverrideID)
		return
	}

	var req UpdateOverrideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/capacity-overrides/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		h.logger.Warn("PATCH /admin/capacity-overrides/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.UpdateOverride(r.Context(), id, patch, req.Acknowledge)
	if err != nil {
		h.respondError(w, "PATCH /admin/capacity-overrides/{id}", err)
		return
	}

	h.logger.Info("PATCH /admin/capacity-overrides/{id} - id=%d, applied=%t", id, result.Applied)
	handlers.RespondJSON(w, http.StatusOK, FromResult(result))
}

// DeleteOverride DELETE /api/v1/admin/capacity-overrides/{overrideId}
func (h *Handler) DeleteOverride(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "overrideId")
	if err != nil {
		h.logger.Warn("DELETE /admin/capacity-overrides/{id} - Invalid override ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOverrideID)
		return
	}

	if err := h.useCase.DeleteOverride(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /admin/capacity-overrides/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/capacity-overrides/{id} - Override deleted: id=%d", id)
	w.WriteHeader(http.StatusNoContent)
}

// CheckImpact POST /api/v1/admin/capacity-overrides/impact
// Только проверка: ничего не меняет
func (h *Handler) CheckImpact(w http.ResponseWriter, r *http.Request) {
	var req ImpactRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/capacity-overrides/impact - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /admin/capacity-overrides/impact - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.impact.CheckImpactOfCapacityChange(r.Context(), serviceReq)
	if err != nil {
		h.respondError(w, "POST /admin/capacity-overrides/impact", err)
		return
	}

	h.logger.Info("POST /admin/capacity-overrides/impact - date=%s, conflict=%t, booked=%d",
		result.Date, result.Conflict, result.BookedCount)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// UpdateDefaultCapacity PUT /api/v1/admin/settings/capacity
func (h *Handler) UpdateDefaultCapacity(w http.ResponseWriter, r *http.Request) {
	var req DefaultCapacityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/settings/capacity - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.CapacityMonWed == nil || req.CapacityThuSun == nil {
		h.logger.Warn("PUT /admin/settings/capacity - Missing capacity")
		handlers.RespondBadRequest(w, msgMissingCapacity)
		return
	}

	result, err := h.useCase.UpdateDefaultCapacity(r.Context(), *req.CapacityMonWed, *req.CapacityThuSun, req.Acknowledge)
	if err != nil {
		h.respondError(w, "PUT /admin/settings/capacity", err)
		return
	}

	h.logger.Info("PUT /admin/settings/capacity - mon-wed=%d, thu-sun=%d, applied=%t",
		*req.CapacityMonWed, *req.CapacityThuSun, result.Applied)
	handlers.RespondJSON(w, http.StatusOK, FromResult(result))
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.logger.Warn("%s - Override not found: %v", route, err)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, domain.ErrDuplicateOverride):
		h.logger.Warn("%s - Duplicate override: %v", route, err)
		handlers.RespondConflict(w, msgDuplicate)

	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidDate):
		h.logger.Warn("%s - Invalid data: %v", route, err)
		handlers.RespondError(w, http.StatusBadRequest, msgInvalidData+": "+err.Error())

	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
