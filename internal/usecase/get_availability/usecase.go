package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/calendar"
	"github.com/m04kA/SMC-SlotCapacity/pkg/types"
)

// UseCase расчёт доступности слотов на дату.
// Чтение без блокировок: устаревшие данные допустимы, создание брони перепроверяет вместимость.
type UseCase struct {
	bookingRepo  BookingRepository
	rules        RulesProvider
	capacities   CapacityResolver
	catalog      ServiceCatalog
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	rules RulesProvider,
	capacities CapacityResolver,
	catalog ServiceCatalog,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		rules:        rules,
		capacities:   capacities,
		catalog:      catalog,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute возвращает слоты дня по порядку времени
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		uc.logger.Warn("GetAvailability: date is required")
		return nil, fmt.Errorf("%w: date is required", ErrInvalidDate)
	}

	date := calendar.Day(req.Date)
	uc.logger.Info("GetAvailability: date=%s, service=%v", date.Format(domain.DateFormat), req.ServiceID)

	// 1. Проверяем услугу из фильтра
	if req.ServiceID != nil {
		if _, err := uc.catalog.Get(ctx, *req.ServiceID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				uc.logger.Warn("GetAvailability: service id=%d not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("GetAvailability: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
	}

	// 2. Правила календаря и сетка слотов
	rules, err := uc.rules.Rules(ctx)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get rules: %v", ErrInternal, err)
	}

	slotTimes, err := rules.DaySlots()
	if err != nil {
		uc.logger.Error("GetAvailability: invalid schedule: %v", err)
		return nil, fmt.Errorf("%w: invalid schedule: %v", ErrInternal, err)
	}

	// 3. Вместимость каждого слота с учётом overrides
	capacities, err := uc.capacities.DayCapacities(ctx, rules, date, slotTimes)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDate) {
			return nil, ErrInvalidDate
		}
		uc.logger.Error("GetAvailability: failed to resolve capacities: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve capacities: %v", ErrInternal, err)
	}

	// 4. Занятость слотов одним запросом
	occupancy, err := uc.bookingRepo.CountActiveGrouped(ctx, date, date, req.ServiceID)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to count bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
	}

	booked := make(map[types.TimeString]int, len(occupancy))
	for _, occ := range occupancy {
		booked[occ.Time] = occ.Count
	}

	// 5. Собираем слоты
	now := uc.timeProvider.Now()
	slots := make([]domain.TimeSlot, 0, len(slotTimes))
	for _, t := range slotTimes {
		slots = append(slots, buildSlot(rules, date, t, capacities[t], booked[t], now))
	}

	uc.logger.Info("GetAvailability: %d slots for %s", len(slots), date.Format(domain.DateFormat))
	return &Response{
		Date:      date,
		ServiceID: req.ServiceID,
		Slots:     slots,
	}, nil
}

// Slot актуальное состояние одного слота с учётом всех услуг.
// Вызывается при создании брони под блокировкой слота и в транзакции из ctx.
func (uc *UseCase) Slot(ctx context.Context, rules *calendar.Rules, date time.Time, slot types.TimeString) (domain.TimeSlot, domain.EffectiveCapacity, error) {
	date = calendar.Day(date)

	capacities, err := uc.capacities.DayCapacities(ctx, rules, date, []types.TimeString{slot})
	if err != nil {
		return domain.TimeSlot{}, domain.EffectiveCapacity{}, err
	}
	capacity := capacities[slot]

	count, err := uc.bookingRepo.CountActiveBySlot(ctx, date, slot, nil)
	if err != nil {
		return domain.TimeSlot{}, domain.EffectiveCapacity{}, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
	}

	return buildSlot(rules, date, slot, capacity, count, uc.timeProvider.Now()), capacity, nil
}

// buildSlot слот недоступен, если он заблокирован override с нулевой вместимостью
// или уже не попадает в окно бронирования
func buildSlot(rules *calendar.Rules, date time.Time, t types.TimeString, capacity domain.EffectiveCapacity, booked int, now time.Time) domain.TimeSlot {
	isAvailable := !capacity.IsBlocked() && rules.IsBookable(date, t, now)
	return domain.NewTimeSlot(t, capacity.Capacity, booked, isAvailable)
}
