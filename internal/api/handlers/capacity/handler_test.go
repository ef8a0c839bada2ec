package capacity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SlotCapacity/internal/integrations/notifier"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/bookings"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/overrides"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/settings"
	"github.com/m04kA/SMC-SlotCapacity/internal/usecase/admin_capacity"
	"github.com/m04kA/SMC-SlotCapacity/pkg/logger"
	"github.com/m04kA/SMC-SlotCapacity/pkg/metrics"
	"github.com/m04kA/SMC-SlotCapacity/pkg/ticket"
	"github.com/m04kA/SMC-SlotCapacity/pkg/types"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type noopNotifier struct{}

func (noopNotifier) Notify(notifier.EventType, *domain.Booking) {}

var (
	now      = time.Date(2024, 5, 25, 9, 0, 0, 0, time.UTC)
	thursday = time.Date(2024, 6, 6, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	router *mux.Router
	repo   *memory.Bookings
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := logger.NewNop()
	repo := memory.NewBookings()
	settingsSvc := settings.NewService(memory.NewSettings(), repo, log)
	overridesSvc := overrides.NewService(memory.NewOverrides(), settingsSvc, log)
	bookingsSvc := bookings.NewService(repo, settingsSvc, noopNotifier{}, (*metrics.Metrics)(nil), log)
	uc := admin_capacity.NewUseCase(overridesSvc, bookingsSvc, repo, settingsSvc, log).
		WithTimeProvider(fixedTime{now: now})

	h := NewHandler(uc, overridesSvc, bookingsSvc, log)
	h.timeProvider = fixedTime{now: now}

	r := mux.NewRouter()
	r.HandleFunc("/capacity-overrides", h.ListOverrides).Methods(http.MethodGet)
	r.HandleFunc("/capacity-overrides", h.CreateOverride).Methods(http.MethodPost)
	r.HandleFunc("/capacity-overrides/impact", h.CheckImpact).Methods(http.MethodPost)
	r.HandleFunc("/capacity-overrides/{overrideId:[0-9]+}", h.UpdateOverride).Methods(http.MethodPatch)
	r.HandleFunc("/capacity-overrides/{overrideId:[0-9]+}", h.DeleteOverride).Methods(http.MethodDelete)
	r.HandleFunc("/settings/capacity", h.UpdateDefaultCapacity).Methods(http.MethodPut)

	return &fixture{router: r, repo: repo}
}

func (f *fixture) do(method, path, payload string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(payload)))
	return rec
}

func (f *fixture) book(t *testing.T, slot string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := f.repo.Create(context.Background(), &domain.Booking{
			TicketNumber:    ticket.New(thursday),
			Status:          domain.StatusConfirmed,
			Source:          domain.SourcePublic,
			AppointmentDate: thursday,
			AppointmentTime: types.TimeString(slot),
			SlotDuration:    60,
			CustomerName:    "Anna",
			CustomerEmail:   "anna@example.com",
			CustomerPhone:   "+10000000",
		})
		require.NoError(t, err)
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) ChangeResponse {
	t.Helper()
	var resp ChangeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestCreateOverride_WarningThenAcknowledge(t *testing.T) {
	f := newFixture(t)
	f.book(t, "14:00", 2)

	rec := f.do(http.MethodPost, "/capacity-overrides", `{"date":"2024-06-06","timeSlot":"14:00","capacity":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.False(t, resp.Applied)
	require.NotNil(t, resp.Warning)
	assert.Equal(t, 2, resp.Warning.BookedCount)
	assert.Nil(t, resp.Override)

	rec = f.do(http.MethodPost, "/capacity-overrides", `{"date":"2024-06-06","timeSlot":"14:00","capacity":1,"acknowledge":true}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	resp = decode(t, rec)
	assert.True(t, resp.Applied)
	require.NotNil(t, resp.Override)
	assert.Equal(t, 1, resp.Override.Capacity)
	assert.False(t, resp.Override.WholeDay)

	rec = f.do(http.MethodPost, "/capacity-overrides", `{"date":"2024-06-06","timeSlot":"14:00","capacity":4}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestOverride_UpdateDeleteList(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/capacity-overrides", `{"date":"2024-06-06","capacity":2}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode(t, rec).Override
	require.NotNil(t, created)
	assert.True(t, created.WholeDay)

	path := fmt.Sprintf("/capacity-overrides/%d", created.ID)

	rec = f.do(http.MethodPatch, path, `{"capacity":5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, decode(t, rec).Override.Capacity)

	rec = f.do(http.MethodPatch, path, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodGet, "/capacity-overrides?from=2024-06-01&to=2024-06-30", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []OverrideResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "2024-06-06", list[0].Date)

	assert.Equal(t, http.StatusNoContent, f.do(http.MethodDelete, path, "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodDelete, path, "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodPatch, path, `{"capacity":1}`).Code)
}

func TestCheckImpact(t *testing.T) {
	f := newFixture(t)
	f.book(t, "14:00", 3)

	rec := f.do(http.MethodPost, "/capacity-overrides/impact", `{"date":"2024-06-06","timeSlot":"14:00","newCapacity":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var impact struct {
		Conflict    bool `json:"conflict"`
		BookedCount int  `json:"bookedCount"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &impact))
	assert.True(t, impact.Conflict)
	assert.Equal(t, 3, impact.BookedCount)

	rec = f.do(http.MethodPost, "/capacity-overrides/impact", `{"date":"2024-06-06","newCapacity":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateDefaultCapacity(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPut, "/settings/capacity", `{"capacityMonWed":2}`).Code)

	rec := f.do(http.MethodPut, "/settings/capacity", `{"capacityMonWed":2,"capacityThuSun":4}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.True(t, resp.Applied)
	require.NotNil(t, resp.Settings)
	assert.Equal(t, 2, resp.Settings.CapacityMonWed)
	assert.Equal(t, 4, resp.Settings.CapacityThuSun)
}
