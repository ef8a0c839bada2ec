package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTimeSlot_Status(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		booked    int
		available bool
		want      SlotStatus
		wantAvail int
	}{
		{"plenty", 3, 0, true, SlotAvailable, 3},
		{"one left", 3, 2, true, SlotLimited, 1},
		{"full", 2, 2, true, SlotFull, 0},
		{"oversold floors at zero", 1, 2, true, SlotFull, 0},
		{"blocked wins over counts", 3, 0, false, SlotBlocked, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := NewTimeSlot("10:00", tt.total, tt.booked, tt.available)
			assert.Equal(t, tt.want, slot.Status)
			assert.Equal(t, tt.wantAvail, slot.AvailableCount)
		})
	}
}

func TestCapacityRule_ForWeekday(t *testing.T) {
	rule := CapacityRule{MonWed: 2, ThuSun: 3}

	for d := time.Sunday; d <= time.Saturday; d++ {
		want := 3
		if d == time.Monday || d == time.Tuesday || d == time.Wednesday {
			want = 2
		}
		assert.Equal(t, want, rule.ForWeekday(d), d.String())
	}
}

func TestBooking_Transitions(t *testing.T) {
	b := &Booking{Status: StatusPending}
	assert.True(t, b.CanBeCancelled())
	assert.True(t, b.CanBeConfirmed())
	assert.True(t, b.CanBeCompleted(false))
	assert.False(t, b.CanBeCompleted(true))

	b.Status = StatusCompleted
	assert.True(t, b.IsTerminal())
	assert.False(t, b.CanBeCancelled())
	assert.False(t, b.CanBeCompleted(false))

	b.Status = StatusCancelled
	assert.False(t, b.IsActive())
}

func TestErrAlreadyTerminal_IsInvalidTransition(t *testing.T) {
	assert.True(t, errors.Is(ErrAlreadyTerminal, ErrInvalidTransition))
	assert.False(t, errors.Is(ErrInvalidTransition, ErrAlreadyTerminal))
}
