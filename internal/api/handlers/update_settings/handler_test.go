package update_settings

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/settings"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/settings/models"
	"github.com/m04kA/SMC-SlotCapacity/pkg/logger"
)

func put(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/admin/settings", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_GridChangeWithUpcomingBookingIsConflict(t *testing.T) {
	log := logger.NewNop()
	bookings := memory.NewBookings()
	h := NewHandler(settings.NewService(memory.NewSettings(), bookings, log), log)

	tomorrow := time.Now().UTC().AddDate(0, 0, 1)
	_, err := bookings.Create(context.Background(), &domain.Booking{
		TicketNumber:    "T-17",
		CustomerName:    "Anna",
		CustomerEmail:   "anna@example.com",
		AppointmentDate: time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, time.UTC),
		AppointmentTime: "17:00",
		SlotDuration:    60,
		Status:          domain.StatusConfirmed,
	})
	require.NoError(t, err)

	rec := put(t, h, `{"closeTime":"17:00"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "T-17")

	// не затрагивающие сетку поля сохраняются как обычно
	rec = put(t, h, `{"requireConfirmation":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.SettingsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.RequireConfirmation)
}

func TestHandler_InvalidTimeIsBadRequest(t *testing.T) {
	log := logger.NewNop()
	h := NewHandler(settings.NewService(memory.NewSettings(), memory.NewBookings(), log), log)

	rec := put(t, h, `{"openTime":"6pm"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
