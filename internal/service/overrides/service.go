package overrides

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	overrideRepo "github.com/m04kA/SMC-SlotCapacity/internal/infra/storage/override"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/calendar"
	"github.com/m04kA/SMC-SlotCapacity/pkg/types"
)

// CreateRequest запрос на создание override.
// Пустой TimeSlot означает override на весь день ("00:00").
type CreateRequest struct {
	Date     time.Time
	TimeSlot types.TimeString
	Capacity int
	IsActive bool
}

// Service хранилище переопределений вместимости по датам
type Service struct {
	repo   OverrideRepository
	rules  RulesProvider
	logger Logger
}

// NewService создает новый экземпляр сервиса переопределений
func NewService(repo OverrideRepository, rules RulesProvider, logger Logger) *Service {
	return &Service{
		repo:   repo,
		rules:  rules,
		logger: logger,
	}
}

// Create создает override. Дубликат проверяется только для активного override.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.CapacityOverride, error) {
	o := &domain.CapacityOverride{
		Date:     calendar.Day(req.Date),
		TimeSlot: req.TimeSlot,
		Capacity: req.Capacity,
		IsActive: req.IsActive,
	}
	if o.TimeSlot.IsZero() {
		o.TimeSlot = domain.WholeDaySlot
	}

	if err := validateOverride(req.Date, o); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.repo.Create(ctx, o)
	if err != nil {
		if errors.Is(err, overrideRepo.ErrDuplicateOverride) {
			s.logger.Warn("Create: active override already exists for %s %s",
				o.Date.Format(domain.DateFormat), o.TimeSlot)
			return nil, ErrDuplicateOverride
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: override id=%d for %s %s capacity=%d active=%t",
		created.ID, created.Date.Format(domain.DateFormat), created.TimeSlot, created.Capacity, created.IsActive)
	return created, nil
}

// Get получает override по ID
func (s *Service) Get(ctx context.Context, id int64) (*domain.CapacityOverride, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, overrideRepo.ErrOverrideNotFound) {
			return nil, ErrOverrideNotFound
		}
		s.logger.Error("Get: repository error for override id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}
	return o, nil
}

// Preview применяет патч к текущему состоянию override без сохранения
func (s *Service) Preview(ctx context.Context, id int64, patch domain.OverridePatch) (current, updated *domain.CapacityOverride, err error) {
	current, err = s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	next := patch.Apply(*current)
	if patch.Date != nil {
		next.Date = calendar.Day(*patch.Date)
	}
	if next.TimeSlot.IsZero() {
		next.TimeSlot = domain.WholeDaySlot
	}

	if err := validateOverride(next.Date, &next); err != nil {
		return nil, nil, err
	}
	return current, &next, nil
}

// Update частично обновляет override
func (s *Service) Update(ctx context.Context, id int64, patch domain.OverridePatch) (*domain.CapacityOverride, error) {
	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	_, next, err := s.Preview(ctx, id, patch)
	if err != nil {
		if !errors.Is(err, ErrOverrideNotFound) {
			s.logger.Warn("Update: override id=%d: %v", id, err)
		}
		return nil, err
	}

	updated, err := s.repo.Update(ctx, next)
	if err != nil {
		switch {
		case errors.Is(err, overrideRepo.ErrOverrideNotFound):
			return nil, ErrOverrideNotFound
		case errors.Is(err, overrideRepo.ErrDuplicateOverride):
			s.logger.Warn("Update: override id=%d collides with another active override on %s %s",
				id, next.Date.Format(domain.DateFormat), next.TimeSlot)
			return nil, ErrDuplicateOverride
		}
		s.logger.Error("Update: repository error for override id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: override id=%d now %s %s capacity=%d active=%t",
		updated.ID, updated.Date.Format(domain.DateFormat), updated.TimeSlot, updated.Capacity, updated.IsActive)
	return updated, nil
}

// Delete удаляет override, дата возвращается к правилу по умолчанию.
// Несуществующий id - ErrOverrideNotFound, чтобы вызывающий знал, откатилась ли дата.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, overrideRepo.ErrOverrideNotFound) {
			s.logger.Warn("Delete: override id=%d not found", id)
			return ErrOverrideNotFound
		}
		s.logger.Error("Delete: repository error for override id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: override id=%d deleted", id)
	return nil
}

// ListByRange получает overrides за период [from, to]
func (s *Service) ListByRange(ctx context.Context, from, to time.Time, activeOnly bool) ([]*domain.CapacityOverride, error) {
	if from.IsZero() || to.IsZero() || to.Before(from) {
		return nil, fmt.Errorf("%w: invalid date range", ErrInvalidDate)
	}

	list, err := s.repo.ListByRange(ctx, calendar.Day(from), calendar.Day(to), activeOnly)
	if err != nil {
		s.logger.Error("ListByRange: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListByRange - repository error: %v", ErrInternal, err)
	}
	return list, nil
}

// EffectiveCapacity вместимость слота с учётом overrides
func (s *Service) EffectiveCapacity(ctx context.Context, date time.Time, slot types.TimeString) (domain.EffectiveCapacity, error) {
	rules, err := s.rules.Rules(ctx)
	if err != nil {
		return domain.EffectiveCapacity{}, fmt.Errorf("%w: EffectiveCapacity - rules: %v", ErrInternal, err)
	}

	capacities, err := s.DayCapacities(ctx, rules, date, []types.TimeString{slot})
	if err != nil {
		return domain.EffectiveCapacity{}, err
	}
	return capacities[slot], nil
}

// DayCapacities вместимость каждого из slots на дату одним запросом к хранилищу
func (s *Service) DayCapacities(ctx context.Context, rules *calendar.Rules, date time.Time, slots []types.TimeString) (map[types.TimeString]domain.EffectiveCapacity, error) {
	defaultCapacity, err := rules.DefaultCapacity(date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	active, err := s.repo.ListActiveByDate(ctx, calendar.Day(date))
	if err != nil {
		s.logger.Error("DayCapacities: repository error: %v", err)
		return nil, fmt.Errorf("%w: DayCapacities - repository error: %v", ErrInternal, err)
	}

	var dayOverride *domain.CapacityOverride
	slotOverrides := make(map[types.TimeString]*domain.CapacityOverride, len(active))
	for _, o := range active {
		if o.IsWholeDay() {
			dayOverride = o
			continue
		}
		slotOverrides[o.TimeSlot] = o
	}

	result := make(map[types.TimeString]domain.EffectiveCapacity, len(slots))
	for _, slot := range slots {
		result[slot] = Resolve(defaultCapacity, dayOverride, slotOverrides[slot])
	}
	return result, nil
}

// Resolve порядок приоритета: override слота, затем override дня, затем правило по дню недели
func Resolve(defaultCapacity int, dayOverride, slotOverride *domain.CapacityOverride) domain.EffectiveCapacity {
	if slotOverride != nil && slotOverride.IsActive {
		return domain.EffectiveCapacity{
			Capacity: slotOverride.Capacity,
			Source:   domain.CapacitySourceSlotOverride,
			Override: slotOverride,
		}
	}
	if dayOverride != nil && dayOverride.IsActive {
		return domain.EffectiveCapacity{
			Capacity: dayOverride.Capacity,
			Source:   domain.CapacitySourceDayOverride,
			Override: dayOverride,
		}
	}
	return domain.EffectiveCapacity{
		Capacity: defaultCapacity,
		Source:   domain.CapacitySourceDefault,
	}
}

// validateOverride проверяет override и приводит слот к "HH:MM", иначе "9:00" не совпадёт со слотом "09:00"
func validateOverride(rawDate time.Time, o *domain.CapacityOverride) error {
	if rawDate.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidDate)
	}
	slot, err := o.TimeSlot.Canonical()
	if err != nil {
		return fmt.Errorf("%w: time slot: %v", ErrInvalidInput, err)
	}
	o.TimeSlot = slot
	if o.Capacity < 0 || o.Capacity > domain.MaxCapacity {
		return fmt.Errorf("%w: capacity must be between 0 and %d", ErrInvalidInput, domain.MaxCapacity)
	}
	return nil
}
