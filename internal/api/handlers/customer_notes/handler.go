package customer_notes

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotCapacity/internal/api/handlers"
	"github.com/m04kA/SMC-SlotCapacity/internal/api/middleware"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/notes"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidNoteID      = "некорректный ID заметки"
	msgNoteNotFound       = "заметка не найдена"
	msgInvalidData        = "некорректные данные заметки"
)

// Handler заметки о клиентах по email
type Handler struct {
	service NotesService
	logger  Logger
}

func NewHandler(service NotesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/admin/customers/{email}/notes
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	list, err := h.service.List(r.Context(), email)
	if err != nil {
		h.respondError(w, "GET /admin/customers/{email}/notes", err)
		return
	}

	resp := make([]*NoteResponse, 0, len(list))
	for _, n := range list {
		resp = append(resp, FromDomainNote(n))
	}

	h.logger.Info("GET /admin/customers/{email}/notes - Notes retrieved successfully: count=%d", len(resp))
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Create POST /api/v1/admin/customers/{email}/notes
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	var req NoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/customers/{email}/notes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	author := "admin"
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		author = claims.Email
	}

	note, err := h.service.Create(r.Context(), email, req.Note, author)
	if err != nil {
		h.respondError(w, "POST /admin/customers/{email}/notes", err)
		return
	}

	h.logger.Info("POST /admin/customers/{email}/notes - Note created successfully: note_id=%d", note.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromDomainNote(note))
}

// Update PUT /api/v1/admin/notes/{noteId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "noteId")
	if err != nil {
		h.logger.Warn("PUT /admin/notes/{id} - Invalid note ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNoteID)
		return
	}

	var req NoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/notes/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	note, err := h.service.Update(r.Context(), id, req.Note)
	if err != nil {
		h.respondError(w, "PUT /admin/notes/{id}", err)
		return
	}

	h.logger.Info("PUT /admin/notes/{id} - Note updated successfully: note_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, FromDomainNote(note))
}

// Delete DELETE /api/v1/admin/notes/{noteId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "noteId")
	if err != nil {
		h.logger.Warn("DELETE /admin/notes/{id} - Invalid note ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNoteID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /admin/notes/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/notes/{id} - Note deleted successfully: note_id=%d", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, notes.ErrNoteNotFound):
		h.logger.Warn("%s - Note not found: %v", route, err)
		handlers.RespondNotFound(w, msgNoteNotFound)

	case errors.Is(err, notes.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: %v", route, err)
		handlers.RespondError(w, http.StatusBadRequest, msgInvalidData+": "+err.Error())

	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
