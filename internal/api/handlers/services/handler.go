package services

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotCapacity/internal/api/handlers"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/catalog"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidServiceID   = "некорректный ID услуги"
	msgServiceNotFound    = "услуга не найдена"
	msgInvalidData        = "некорректные данные услуги"
)

// Handler каталог услуг: публичная витрина и управление из админки
type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/services - только активные услуги
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "GET /services", true)
}

// ListAll GET /api/v1/admin/services - включая выключенные
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "GET /admin/services", false)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, route string, activeOnly bool) {
	list, err := h.service.List(r.Context(), activeOnly)
	if err != nil {
		h.logger.Error("%s - Failed to list services: %v", route, err)
		handlers.RespondInternalError(w)
		return
	}

	resp := make([]*ServiceResponse, 0, len(list))
	for _, s := range list {
		resp = append(resp, FromDomainService(s))
	}

	h.logger.Info("%s - Services retrieved successfully: count=%d", route, len(resp))
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Create POST /api/v1/admin/services
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	created, err := h.service.Create(r.Context(), req.ToServiceRequest())
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			h.logger.Warn("POST /admin/services - Invalid data: %v", err)
			handlers.RespondError(w, http.StatusBadRequest, msgInvalidData+": "+err.Error())
			return
		}
		h.logger.Error("POST /admin/services - Failed to create service: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/services - Service created successfully: service_id=%d", created.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromDomainService(created))
}

// Update PUT /api/v1/admin/services/{serviceId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "serviceId")
	if err != nil {
		h.logger.Warn("PUT /admin/services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var req UpdateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/services/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	updated, err := h.service.Update(r.Context(), id, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("PUT /admin/services/{id} - Service not found: service_id=%d", id)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PUT /admin/services/{id} - Invalid data: service_id=%d, error=%v", id, err)
			handlers.RespondError(w, http.StatusBadRequest, msgInvalidData+": "+err.Error())

		default:
			h.logger.Error("PUT /admin/services/{id} - Failed to update service: service_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/services/{id} - Service updated successfully: service_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, FromDomainService(updated))
}
