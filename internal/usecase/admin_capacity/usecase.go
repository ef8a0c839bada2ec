package admin_capacity

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/bookings/models"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/calendar"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/overrides"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/settings"
	"github.com/m04kA/SMC-SlotCapacity/pkg/ptr"
	"github.com/m04kA/SMC-SlotCapacity/pkg/types"
)

// UseCase изменения вместимости из админки.
// Каждое изменение сначала проверяется на конфликт с существующими бронированиями;
// бронирования никогда не отменяются.
type UseCase struct {
	overrides    OverrideService
	impact       ImpactChecker
	bookings     BookingCounter
	settings     SettingsService
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	overrides OverrideService,
	impact ImpactChecker,
	bookings BookingCounter,
	settings SettingsService,
	logger Logger,
) *UseCase {
	return &UseCase{
		overrides:    overrides,
		impact:       impact,
		bookings:     bookings,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// CreateOverride создает override. При конфликте без acknowledge ничего не меняется.
func (uc *UseCase) CreateOverride(ctx context.Context, req overrides.CreateRequest, acknowledge bool) (*Result, error) {
	if req.TimeSlot.IsZero() {
		req.TimeSlot = domain.WholeDaySlot
	}

	uc.logger.Info("CreateOverride: date=%s, slot=%s, capacity=%d, active=%t, acknowledge=%t",
		req.Date.Format(domain.DateFormat), req.TimeSlot, req.Capacity, req.IsActive, acknowledge)

	// Неактивный override на вместимость не влияет
	if req.IsActive {
		target := domain.CapacityOverride{Date: req.Date, TimeSlot: req.TimeSlot, Capacity: req.Capacity, IsActive: true}
		warning, err := uc.checkOverride(ctx, 0, target)
		if err != nil {
			return nil, err
		}
		if warning != nil && !acknowledge {
			uc.logger.Warn("CreateOverride: not applied, %s", warning.Message)
			return &Result{Warning: warning}, nil
		}

		created, err := uc.overrides.Create(ctx, req)
		if err != nil {
			return nil, err
		}
		return &Result{Applied: true, Warning: warning, Override: created}, nil
	}

	created, err := uc.overrides.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	return &Result{Applied: true, Override: created}, nil
}

// UpdateOverride частично обновляет override, конфликт проверяется для итогового состояния
func (uc *UseCase) UpdateOverride(ctx context.Context, id int64, patch domain.OverridePatch, acknowledge bool) (*Result, error) {
	uc.logger.Info("UpdateOverride: id=%d, acknowledge=%t", id, acknowledge)

	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	_, next, err := uc.overrides.Preview(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	var warning *Warning
	if next.IsActive {
		warning, err = uc.checkOverride(ctx, id, *next)
		if err != nil {
			return nil, err
		}
		if warning != nil && !acknowledge {
			uc.logger.Warn("UpdateOverride: id=%d not applied, %s", id, warning.Message)
			return &Result{Warning: warning}, nil
		}
	}

	updated, err := uc.overrides.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return &Result{Applied: true, Warning: warning, Override: updated}, nil
}

// DeleteOverride удаляет override, дата возвращается к правилу по умолчанию
func (uc *UseCase) DeleteOverride(ctx context.Context, id int64) error {
	uc.logger.Info("DeleteOverride: id=%d", id)
	return uc.overrides.Delete(ctx, id)
}

// UpdateDefaultCapacity меняет вместимость по умолчанию.
// Проверяются все даты окна бронирования начиная с сегодня, кроме слотов и дней под override.
func (uc *UseCase) UpdateDefaultCapacity(ctx context.Context, monWed, thuSun int, acknowledge bool) (*Result, error) {
	uc.logger.Info("UpdateDefaultCapacity: mon-wed=%d, thu-sun=%d, acknowledge=%t", monWed, thuSun, acknowledge)

	if err := settings.ValidateCapacity(monWed); err != nil {
		return nil, fmt.Errorf("%w: capacity mon-wed: %v", ErrInvalidInput, err)
	}
	if err := settings.ValidateCapacity(thuSun); err != nil {
		return nil, fmt.Errorf("%w: capacity thu-sun: %v", ErrInvalidInput, err)
	}

	rules, err := uc.settings.Rules(ctx)
	if err != nil {
		uc.logger.Error("UpdateDefaultCapacity: failed to get rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get rules: %v", ErrInternal, err)
	}

	from := calendar.Day(uc.timeProvider.Now())
	to := from.AddDate(0, 0, rules.Settings().BookingWindowDays)
	rule := domain.CapacityRule{MonWed: monWed, ThuSun: thuSun}

	impacts, err := uc.checkDefaultCapacity(ctx, from, to, rule)
	if err != nil {
		return nil, err
	}

	var warning *Warning
	if len(impacts) > 0 {
		warning = newWarning(impacts)
		if !acknowledge {
			uc.logger.Warn("UpdateDefaultCapacity: not applied, %s", warning.Message)
			return &Result{Warning: warning}, nil
		}
	}

	saved, err := uc.settings.Update(ctx, domain.SettingsPatch{
		CapacityMonWed: ptr.Ptr(monWed),
		CapacityThuSun: ptr.Ptr(thuSun),
	})
	if err != nil {
		return nil, err
	}
	return &Result{Applied: true, Warning: warning, Settings: saved}, nil
}

// checkOverride проверка одного override; selfID исключается из списка overrides слотов
func (uc *UseCase) checkOverride(ctx context.Context, selfID int64, target domain.CapacityOverride) (*Warning, error) {
	req := &models.ImpactRequest{
		Date:        target.Date,
		NewCapacity: target.Capacity,
	}

	if target.IsWholeDay() {
		day := calendar.Day(target.Date)
		active, err := uc.overrides.ListByRange(ctx, day, day, true)
		if err != nil {
			return nil, err
		}
		for _, o := range active {
			if o.ID != selfID && !o.IsWholeDay() {
				req.ExcludeSlots = append(req.ExcludeSlots, o.TimeSlot)
			}
		}
	} else {
		req.TimeSlot = ptr.Ptr(target.TimeSlot)
	}

	impact, err := uc.impact.CheckImpactOfCapacityChange(ctx, req)
	if err != nil {
		return nil, err
	}
	if !impact.Conflict {
		return nil, nil
	}
	return newWarning([]*models.ImpactResponse{impact}), nil
}

// checkDefaultCapacity проверяет только даты, где есть бронирования
func (uc *UseCase) checkDefaultCapacity(ctx context.Context, from, to time.Time, rule domain.CapacityRule) ([]*models.ImpactResponse, error) {
	occupancy, err := uc.bookings.CountActiveGrouped(ctx, from, to, nil)
	if err != nil {
		uc.logger.Error("UpdateDefaultCapacity: failed to count bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
	}
	if len(occupancy) == 0 {
		return nil, nil
	}

	active, err := uc.overrides.ListByRange(ctx, from, to, true)
	if err != nil {
		return nil, err
	}

	coveredDays := make(map[time.Time]struct{})
	slotOverrides := make(map[time.Time][]types.TimeString)
	for _, o := range active {
		day := calendar.Day(o.Date)
		if o.IsWholeDay() {
			coveredDays[day] = struct{}{}
			continue
		}
		slotOverrides[day] = append(slotOverrides[day], o.TimeSlot)
	}

	var (
		impacts []*models.ImpactResponse
		checked = make(map[time.Time]struct{})
	)
	for _, occ := range occupancy {
		day := calendar.Day(occ.Date)
		if _, ok := checked[day]; ok {
			continue
		}
		checked[day] = struct{}{}

		if _, ok := coveredDays[day]; ok {
			continue
		}

		impact, err := uc.impact.CheckImpactOfCapacityChange(ctx, &models.ImpactRequest{
			Date:         day,
			NewCapacity:  rule.ForWeekday(day.Weekday()),
			ExcludeSlots: slotOverrides[day],
		})
		if err != nil {
			return nil, err
		}
		if impact.Conflict {
			impacts = append(impacts, impact)
		}
	}

	return impacts, nil
}
