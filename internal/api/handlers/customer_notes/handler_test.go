package customer_notes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotCapacity/internal/api/middleware"
	"github.com/m04kA/SMC-SlotCapacity/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/notes"
	"github.com/m04kA/SMC-SlotCapacity/pkg/logger"
)

func newRouter() http.Handler {
	log := logger.NewNop()
	h := NewHandler(notes.NewService(memory.NewNotes(), log), log)

	r := mux.NewRouter()
	r.HandleFunc("/admin/customers/{email}/notes", h.List).Methods(http.MethodGet)
	r.HandleFunc("/admin/customers/{email}/notes", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/admin/notes/{noteId}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/admin/notes/{noteId}", h.Delete).Methods(http.MethodDelete)

	// автор заметки берётся из токена
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := middleware.WithClaims(req.Context(), &middleware.Claims{Email: "owner@shop.com", Role: "admin"})
		r.ServeHTTP(w, req.WithContext(ctx))
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, bytes.NewBufferString(body)))
	return rec
}

func TestHandler_NotesLifecycle(t *testing.T) {
	h := newRouter()

	rec := do(t, h, http.MethodPost, "/admin/customers/Anna@Example.com/notes", `{"note":"allergic to acetone"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created NoteResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "anna@example.com", created.CustomerEmail)
	assert.Equal(t, "owner@shop.com", created.CreatedBy)

	rec = do(t, h, http.MethodPut, "/admin/notes/1", `{"note":"allergic to acetone, use gentle remover"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/admin/customers/anna@example.com/notes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []NoteResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "allergic to acetone, use gentle remover", list[0].Note)

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/admin/notes/1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/admin/notes/1", "").Code)
}

func TestHandler_Create_Invalid(t *testing.T) {
	h := newRouter()

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/admin/customers/anna@example.com/notes", `{"note":"  "}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/admin/customers/not-an-email/notes", `{"note":"x"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, "/admin/notes/abc", `{"note":"x"}`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPut, "/admin/notes/7", `{"note":"x"}`).Code)
}
