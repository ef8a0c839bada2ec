package services

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotCapacity/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/catalog"
	"github.com/m04kA/SMC-SlotCapacity/pkg/logger"
)

func newRouter() *mux.Router {
	log := logger.NewNop()
	h := NewHandler(catalog.NewService(memory.NewCatalog(), log), log)

	r := mux.NewRouter()
	r.HandleFunc("/services", h.List).Methods(http.MethodGet)
	r.HandleFunc("/admin/services", h.ListAll).Methods(http.MethodGet)
	r.HandleFunc("/admin/services", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/admin/services/{serviceId}", h.Update).Methods(http.MethodPut)
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []ServiceResponse {
	t.Helper()
	var list []ServiceResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	return list
}

func TestHandler_CreateAndListActive(t *testing.T) {
	r := newRouter()

	rec := do(t, r, http.MethodPost, "/admin/services", `{"name":"Gel manicure","durationMinutes":60,"price":35,"displayOrder":2}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, r, http.MethodPost, "/admin/services", `{"name":"Nail art","durationMinutes":30,"isActive":false,"displayOrder":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, r, http.MethodGet, "/services", "")
	require.Equal(t, http.StatusOK, rec.Code)
	public := decodeList(t, rec)
	require.Len(t, public, 1)
	assert.Equal(t, "Gel manicure", public[0].Name)
	assert.True(t, public[0].IsActive)

	rec = do(t, r, http.MethodGet, "/admin/services", "")
	require.Equal(t, http.StatusOK, rec.Code)
	all := decodeList(t, rec)
	require.Len(t, all, 2)
	assert.Equal(t, "Nail art", all[0].Name)
}

func TestHandler_Create_Invalid(t *testing.T) {
	r := newRouter()

	rec := do(t, r, http.MethodPost, "/admin/services", `{"name":"","durationMinutes":60}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, r, http.MethodPost, "/admin/services", `{"name":"x","durationMinutes":60,"unknown":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Update(t *testing.T) {
	r := newRouter()

	rec := do(t, r, http.MethodPost, "/admin/services", `{"name":"Pedicure","durationMinutes":60,"price":40}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created ServiceResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))

	rec = do(t, r, http.MethodPut, "/admin/services/1", `{"clearPrice":true,"isActive":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated ServiceResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Nil(t, updated.Price)
	assert.False(t, updated.IsActive)

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodPut, "/admin/services/42", `{"name":"x"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPut, "/admin/services/abc", `{"name":"x"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPut, "/admin/services/1", `{}`).Code)
}
