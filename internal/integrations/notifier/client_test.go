package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/pkg/logger"
)

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:              1,
		TicketNumber:    "TKT-240601-0000ABCD",
		Status:          domain.StatusPending,
		AppointmentDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "14:00",
		CustomerName:    "Anna",
		CustomerEmail:   "anna@example.com",
	}
}

func TestClient_Send(t *testing.T) {
	var got Event
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, eventsPath, r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", time.Second, logger.NewNop())
	err := c.Send(context.Background(), NewEvent(EventCreated, testBooking(), time.Now()))

	require.NoError(t, err)
	assert.Equal(t, EventCreated, got.Type)
	assert.Equal(t, "2024-06-01", got.AppointmentDate)
	assert.Equal(t, "14:00", got.AppointmentTime)
}

func TestClient_SendRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second, logger.NewNop())
	err := c.Send(context.Background(), NewEvent(EventCreated, testBooking(), time.Now()))

	assert.ErrorIs(t, err, ErrRejected)
}

func TestClient_NotifySkipsWhenRequested(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second, logger.NewNop())

	skipped := testBooking()
	skipped.SkipNotification = true
	c.Notify(EventCreated, skipped)
	c.Notify(EventCancelled, testBooking())
	c.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_NotifyFailureDoesNotPanic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second, logger.NewNop())
	c.Notify(EventCompleted, testBooking())
	c.Wait()
}
