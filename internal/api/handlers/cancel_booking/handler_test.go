package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotCapacity/internal/api/middleware"
	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/bookings"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/bookings/models"
	"github.com/m04kA/SMC-SlotCapacity/pkg/logger"
)

type stubService struct {
	got *models.CancelRequest
	err error
}

func (s *stubService) Cancel(_ context.Context, id int64, req *models.CancelRequest) (*domain.Booking, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Booking{ID: id, Status: domain.StatusCancelled}, nil
}

func request(id, payload string, claims *middleware.Claims) *http.Request {
	r := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+id+"/cancel", strings.NewReader(payload))
	r = mux.SetURLVars(r, map[string]string{"bookingId": id})
	if claims != nil {
		r = r.WithContext(middleware.WithClaims(r.Context(), claims))
	}
	return r
}

func TestHandle_CancelsOwnBooking(t *testing.T) {
	svc := &stubService{}
	rec := httptest.NewRecorder()

	NewHandler(svc, logger.NewNop()).Handle(rec, request("5", `{"reason":"sick"}`, &middleware.Claims{Email: "anna@example.com"}))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got.CustomerEmail)
	assert.Equal(t, "anna@example.com", *svc.got.CustomerEmail)
	assert.Equal(t, "anna@example.com", svc.got.CancelledBy)
	assert.Equal(t, "sick", svc.got.Reason)
}

func TestHandle_EmptyBodyIsAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&stubService{}, logger.NewNop()).Handle(rec, request("5", "", &middleware.Claims{Email: "anna@example.com"}))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandle_Errors(t *testing.T) {
	claims := &middleware.Claims{Email: "anna@example.com"}

	tests := []struct {
		name   string
		id     string
		claims *middleware.Claims
		err    error
		want   int
	}{
		{name: "bad id", id: "x", claims: claims, want: http.StatusBadRequest},
		{name: "no claims", id: "5", want: http.StatusUnauthorized},
		{name: "not found", id: "5", claims: claims, err: bookings.ErrBookingNotFound, want: http.StatusNotFound},
		{name: "someone else's booking", id: "5", claims: claims, err: bookings.ErrAccessDenied, want: http.StatusForbidden},
		{name: "already cancelled", id: "5", claims: claims, err: bookings.ErrAlreadyTerminal, want: http.StatusConflict},
		{name: "internal", id: "5", claims: claims, err: bookings.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&stubService{err: tt.err}, logger.NewNop()).Handle(rec, request(tt.id, "", tt.claims))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
