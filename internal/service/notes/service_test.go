package notes

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SlotCapacity/pkg/logger"
)

func TestNotesLifecycle(t *testing.T) {
	svc := NewService(memory.NewNotes(), logger.NewNop())
	ctx := context.Background()

	first, err := svc.Create(ctx, "Anna@Example.com", "prefers almond shape", "admin")
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", first.CustomerEmail)

	_, err = svc.Create(ctx, "anna@example.com", "allergic to acetone", "admin")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "bob@example.com", "late twice", "admin")
	require.NoError(t, err)

	list, err := svc.List(ctx, " ANNA@example.com ")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "allergic to acetone", list[0].Note)

	updated, err := svc.Update(ctx, first.ID, "prefers square shape")
	require.NoError(t, err)
	assert.Equal(t, "prefers square shape", updated.Note)

	require.NoError(t, svc.Delete(ctx, first.ID))
	assert.ErrorIs(t, svc.Delete(ctx, first.ID), domain.ErrNotFound)

	_, err = svc.Update(ctx, first.ID, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNotesValidation(t *testing.T) {
	svc := NewService(memory.NewNotes(), logger.NewNop())
	ctx := context.Background()

	_, err := svc.Create(ctx, "", "text", "admin")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Create(ctx, "anna@example.com", "   ", "admin")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Create(ctx, "anna@example.com", strings.Repeat("a", domain.MaxNoteLength+1), "admin")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Create(ctx, "anna@example.com", "text", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
