package overrides

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/calendar"
	"github.com/m04kA/SMC-SlotCapacity/pkg/logger"
	"github.com/m04kA/SMC-SlotCapacity/pkg/ptr"
	"github.com/m04kA/SMC-SlotCapacity/pkg/types"
)

type staticRules struct {
	settings domain.ShopSettings
}

func (r staticRules) Rules(context.Context) (*calendar.Rules, error) {
	return calendar.New(r.settings), nil
}

func newService() *Service {
	s := domain.DefaultSettings()
	s.Capacity = domain.CapacityRule{MonWed: 2, ThuSun: 3}
	return NewService(memory.NewOverrides(), staticRules{settings: s}, logger.NewNop())
}

// 2024-06-01 - суббота
var saturday = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func TestEffectiveCapacity_DefaultWithoutOverride(t *testing.T) {
	svc := newService()

	eff, err := svc.EffectiveCapacity(context.Background(), saturday, "10:00")

	require.NoError(t, err)
	assert.Equal(t, 3, eff.Capacity)
	assert.Equal(t, domain.CapacitySourceDefault, eff.Source)
}

func TestEffectiveCapacity_Precedence(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Date: saturday, Capacity: 5, IsActive: true})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateRequest{Date: saturday, TimeSlot: "14:00", Capacity: 0, IsActive: true})
	require.NoError(t, err)

	eff, err := svc.EffectiveCapacity(ctx, saturday, "10:00")
	require.NoError(t, err)
	assert.Equal(t, 5, eff.Capacity)
	assert.Equal(t, domain.CapacitySourceDayOverride, eff.Source)

	eff, err = svc.EffectiveCapacity(ctx, saturday, "14:00")
	require.NoError(t, err)
	assert.Equal(t, 0, eff.Capacity)
	assert.True(t, eff.IsBlocked())
}

func TestEffectiveCapacity_InactiveOverrideIgnored(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Date: saturday, TimeSlot: "10:00", Capacity: 1, IsActive: false})
	require.NoError(t, err)

	eff, err := svc.EffectiveCapacity(ctx, saturday, "10:00")
	require.NoError(t, err)
	assert.Equal(t, 3, eff.Capacity)
}

func TestCreate_Duplicate(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Date: saturday, TimeSlot: "14:00", Capacity: 1, IsActive: true})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateRequest{Date: saturday, TimeSlot: "14:00", Capacity: 2, IsActive: true})
	assert.ErrorIs(t, err, domain.ErrDuplicateOverride)

	// неактивный дубликат допустим
	_, err = svc.Create(ctx, CreateRequest{Date: saturday, TimeSlot: "14:00", Capacity: 2, IsActive: false})
	assert.NoError(t, err)
}

func TestUpdate_ActivatingOntoTakenPairFails(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Date: saturday, TimeSlot: "14:00", Capacity: 1, IsActive: true})
	require.NoError(t, err)
	inactive, err := svc.Create(ctx, CreateRequest{Date: saturday, TimeSlot: "14:00", Capacity: 2, IsActive: false})
	require.NoError(t, err)

	_, err = svc.Update(ctx, inactive.ID, domain.OverridePatch{IsActive: ptr.Ptr(true)})
	assert.ErrorIs(t, err, domain.ErrDuplicateOverride)

	moved, err := svc.Update(ctx, inactive.ID, domain.OverridePatch{
		TimeSlot: ptr.Ptr(types.TimeString("15:00")),
		IsActive: ptr.Ptr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("15:00"), moved.TimeSlot)
}

func TestUpdate_NotFound(t *testing.T) {
	_, err := newService().Update(context.Background(), 404, domain.OverridePatch{Capacity: ptr.Ptr(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_NeverSucceedsTwice(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	o, err := svc.Create(ctx, CreateRequest{Date: saturday, Capacity: 1, IsActive: true})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, o.ID))
	assert.ErrorIs(t, svc.Delete(ctx, o.ID), domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 12345), domain.ErrNotFound)

	// дата вернулась к правилу по умолчанию
	eff, err := svc.EffectiveCapacity(ctx, saturday, "10:00")
	require.NoError(t, err)
	assert.Equal(t, domain.CapacitySourceDefault, eff.Source)
}

func TestCreate_Validation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Capacity: 1, IsActive: true})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = svc.Create(ctx, CreateRequest{Date: saturday, Capacity: -1, IsActive: true})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Create(ctx, CreateRequest{Date: saturday, TimeSlot: "25:00", Capacity: 1, IsActive: true})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreate_UnpaddedSlotMatchesGrid(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	slot, err := types.NewTimeStringFromString("9:00")
	require.NoError(t, err)

	created, err := svc.Create(ctx, CreateRequest{Date: saturday, TimeSlot: slot, Capacity: 0, IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("09:00"), created.TimeSlot)

	eff, err := svc.EffectiveCapacity(ctx, saturday, "09:00")
	require.NoError(t, err)
	assert.Equal(t, 0, eff.Capacity)
	assert.Equal(t, domain.CapacitySourceSlotOverride, eff.Source)

	// прямой вызов сервиса со слотом без ведущего нуля
	created, err = svc.Create(ctx, CreateRequest{Date: saturday, TimeSlot: "9:30", Capacity: 1, IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("09:30"), created.TimeSlot)
}

func TestCreate_UnpaddedMidnightIsWholeDay(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{Date: saturday, TimeSlot: "0:00", Capacity: 1, IsActive: true})
	require.NoError(t, err)
	assert.True(t, created.IsWholeDay())

	eff, err := svc.EffectiveCapacity(ctx, saturday, "15:00")
	require.NoError(t, err)
	assert.Equal(t, 1, eff.Capacity)
	assert.Equal(t, domain.CapacitySourceDayOverride, eff.Source)
}
