package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	createBooking "github.com/m04kA/SMC-SlotCapacity/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SlotCapacity/pkg/logger"
)

type stubUseCase struct {
	got *createBooking.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &createBooking.Response{
		Booking: &domain.Booking{
			ID:              7,
			TicketNumber:    "TKT-240604-ABCDEF12",
			Status:          domain.StatusConfirmed,
			Source:          req.Source,
			AppointmentDate: req.Date,
			AppointmentTime: req.Time,
			CustomerName:    req.CustomerName,
			CreatedAt:       time.Now(),
			UpdatedAt:       time.Now(),
		},
		Slot: domain.NewTimeSlot(req.Time, 3, 1, true),
	}, nil
}

const body = `{"date":"2024-06-04","time":"10:00","customerName":"Anna","customerEmail":"anna@example.com","customerPhone":"+1 555 0100"}`

func post(h *Handler, payload string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(payload)))
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &stubUseCase{}
	rec := post(NewHandler(uc, logger.NewNop()), body)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, domain.SourcePublic, uc.got.Source)
	assert.Equal(t, "10:00", uc.got.Time.String())

	var resp CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "TKT-240604-ABCDEF12", resp.Booking.TicketNumber)
	assert.Equal(t, "2024-06-04", resp.Booking.AppointmentDate)
	assert.Equal(t, 2, resp.Slot.AvailableCount)
}

func TestHandle_AdminSource(t *testing.T) {
	uc := &stubUseCase{}
	payload := `{"date":"2024-06-04","time":"10:00","customerName":"Anna","customerEmail":"anna@example.com",` +
		`"customerPhone":"+1 555 0100","overrideCapacity":true,"isPrepaid":true}`

	rec := post(NewAdminHandler(uc, logger.NewNop()), payload)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, domain.SourceAdmin, uc.got.Source)
	assert.True(t, uc.got.OverrideCapacity)
	assert.True(t, uc.got.IsPrepaid)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		err     error
		want    int
	}{
		{name: "broken json", payload: `{"date":`, want: http.StatusBadRequest},
		{name: "unknown field", payload: `{"date":"2024-06-04","hack":1}`, want: http.StatusBadRequest},
		{name: "bad date", payload: strings.Replace(body, "2024-06-04", "04.06.2024", 1), want: http.StatusBadRequest},
		{name: "bad time", payload: strings.Replace(body, "10:00", "10am", 1), want: http.StatusBadRequest},
		{name: "slot full", payload: body, err: createBooking.ErrSlotFull, want: http.StatusConflict},
		{name: "service not found", payload: body, err: createBooking.ErrServiceNotFound, want: http.StatusNotFound},
		{name: "not a slot", payload: body, err: createBooking.ErrInvalidTimeSlot, want: http.StatusBadRequest},
		{name: "outside window", payload: body, err: createBooking.ErrInvalidDate, want: http.StatusBadRequest},
		{name: "invalid input", payload: body, err: fmt.Errorf("%w: customerEmail", createBooking.ErrInvalidInput), want: http.StatusBadRequest},
		{name: "internal", payload: body, err: createBooking.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(NewHandler(&stubUseCase{err: tt.err}, logger.NewNop()), tt.payload)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
