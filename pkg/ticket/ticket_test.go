package ticket

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	a := New(date)
	b := New(date)

	assert.True(t, strings.HasPrefix(a, "TKT-240601-"))
	assert.True(t, Valid(a))
	assert.NotEqual(t, a, b)
}

func TestValid(t *testing.T) {
	assert.False(t, Valid(""))
	assert.False(t, Valid("TKT-240601"))
	assert.False(t, Valid("BKG-240601-1A2B3C4D"))
	assert.False(t, Valid("TKT-241301-1A2B3C4D"))
	assert.False(t, Valid("TKT-240601-1a2b3c4d"))
	assert.True(t, Valid("TKT-240601-1A2B3C4D"))
}
