package booking_action

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SlotCapacity/internal/api/middleware"
	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/bookings"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/bookings/models"
	"github.com/m04kA/SMC-SlotCapacity/pkg/logger"
)

type stubService struct {
	called   string
	markedBy string
	err      error
}

func (s *stubService) result(id int64, status domain.BookingStatus) (*domain.Booking, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Booking{ID: id, Status: status}, nil
}

func (s *stubService) Confirm(_ context.Context, id int64) (*domain.Booking, error) {
	s.called = ActionConfirm
	return s.result(id, domain.StatusConfirmed)
}

func (s *stubService) Complete(_ context.Context, id int64) (*domain.Booking, error) {
	s.called = ActionComplete
	return s.result(id, domain.StatusCompleted)
}

func (s *stubService) Cancel(_ context.Context, id int64, req *models.CancelRequest) (*domain.Booking, error) {
	s.called = ActionCancel
	s.markedBy = req.CancelledBy
	return s.result(id, domain.StatusCancelled)
}

func (s *stubService) MarkNoShow(_ context.Context, id int64, markedBy string) (*domain.Booking, error) {
	s.called = ActionNoShow
	s.markedBy = markedBy
	return s.result(id, domain.StatusCancelled)
}

func serve(svc *stubService, action string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/bookings/3/"+action, nil)
	r = mux.SetURLVars(r, map[string]string{"bookingId": "3", "action": action})
	r = r.WithContext(middleware.WithClaims(r.Context(), &middleware.Claims{Email: "owner@shop.com", Role: "admin"}))

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, r)
	return rec
}

func TestHandle_DispatchesAction(t *testing.T) {
	for _, action := range []string{ActionConfirm, ActionComplete, ActionNoShow, ActionCancel} {
		svc := &stubService{}
		rec := serve(svc, action)

		assert.Equal(t, http.StatusOK, rec.Code, action)
		assert.Equal(t, action, svc.called)
	}
}

func TestHandle_ActorFromToken(t *testing.T) {
	svc := &stubService{}
	serve(svc, ActionNoShow)
	assert.Equal(t, "owner@shop.com", svc.markedBy)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		action string
		err    error
		want   int
	}{
		{name: "unknown action", action: "archive", want: http.StatusBadRequest},
		{name: "not found", action: ActionConfirm, err: bookings.ErrBookingNotFound, want: http.StatusNotFound},
		{name: "terminal", action: ActionComplete, err: bookings.ErrAlreadyTerminal, want: http.StatusConflict},
		{name: "pending needs confirm", action: ActionComplete, err: bookings.ErrInvalidTransition, want: http.StatusConflict},
		{name: "internal", action: ActionNoShow, err: bookings.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serve(&stubService{err: tt.err}, tt.action).Code)
		})
	}
}
