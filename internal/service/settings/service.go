package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SlotCapacity/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/calendar"
	"github.com/m04kA/SMC-SlotCapacity/pkg/types"
)

// Service сервис настроек магазина
type Service struct {
	repo         SettingsRepository
	bookings     BookingLister
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(repo SettingsRepository, bookings BookingLister, logger Logger) *Service {
	return &Service{
		repo:         repo,
		bookings:     bookings,
		timeProvider: RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Get получает настройки магазина.
// Пока администратор ничего не сохранил, действуют значения по умолчанию.
func (s *Service) Get(ctx context.Context) (*domain.ShopSettings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			defaults := domain.DefaultSettings()
			return &defaults, nil
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}
	return settings, nil
}

// Rules правила календаря по текущим настройкам
func (s *Service) Rules(ctx context.Context) (*calendar.Rules, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return calendar.New(*settings), nil
}

// Update частично обновляет настройки. Проверяется итоговое состояние, а не только патч.
func (s *Service) Update(ctx context.Context, patch domain.SettingsPatch) (*domain.ShopSettings, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	updated := patch.Apply(*current)
	if err := Validate(updated); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	if gridChanged(*current, updated) {
		if err := s.checkStranded(ctx, updated); err != nil {
			return nil, err
		}
	}

	saved, err := s.repo.Upsert(ctx, updated)
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: settings saved, capacity mon-wed=%d thu-sun=%d, window=%d days, cutoff=%dh, hours %s-%s/%dmin",
		saved.Capacity.MonWed, saved.Capacity.ThuSun, saved.BookingWindowDays, saved.SameDayCutoffHours,
		saved.OpenTime, saved.CloseTime, saved.SlotDurationMinutes)
	return saved, nil
}

// checkStranded запрещает менять сетку слотов, пока ожидающие или подтверждённые записи
// с сегодняшнего дня окажутся вне новой сетки. Такие записи администратор сначала переносит или отменяет.
func (s *Service) checkStranded(ctx context.Context, next domain.ShopSettings) error {
	slots, err := calendar.New(next).DaySlots()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	grid := make(map[types.TimeString]struct{}, len(slots))
	for _, slot := range slots {
		grid[slot] = struct{}{}
	}

	today := calendar.Day(s.timeProvider.Now())
	bookings, err := s.bookings.List(ctx, domain.BookingsFilter{StartDate: &today})
	if err != nil {
		s.logger.Error("Update: failed to list upcoming bookings: %v", err)
		return fmt.Errorf("%w: Update - list bookings: %v", ErrInternal, err)
	}

	var stranded []*domain.Booking
	for _, b := range bookings {
		if !b.CanBeCancelled() {
			continue
		}
		if _, ok := grid[b.AppointmentTime]; !ok {
			stranded = append(stranded, b)
		}
	}
	if len(stranded) == 0 {
		return nil
	}

	first := stranded[0]
	s.logger.Warn("Update: grid change rejected, %d upcoming bookings off the new grid (first %s %s at %s)",
		len(stranded), first.TicketNumber, first.AppointmentDate.Format(domain.DateFormat), first.AppointmentTime)
	return fmt.Errorf("%w: %d booking(s), first %s on %s at %s",
		ErrStrandedBookings, len(stranded), first.TicketNumber, first.AppointmentDate.Format(domain.DateFormat), first.AppointmentTime)
}

// gridChanged true, если меняются часы работы или длительность слота
func gridChanged(current, next domain.ShopSettings) bool {
	return current.OpenTime != next.OpenTime ||
		current.CloseTime != next.CloseTime ||
		current.SlotDurationMinutes != next.SlotDurationMinutes
}

// Validate проверяет настройки целиком
func Validate(s domain.ShopSettings) error {
	if err := validateCapacity(s.Capacity.MonWed); err != nil {
		return fmt.Errorf("%w: capacity mon-wed: %v", ErrInvalidInput, err)
	}
	if err := validateCapacity(s.Capacity.ThuSun); err != nil {
		return fmt.Errorf("%w: capacity thu-sun: %v", ErrInvalidInput, err)
	}
	if s.BookingWindowDays < 0 || s.BookingWindowDays > domain.MaxBookingWindowDays {
		return fmt.Errorf("%w: booking window must be between 0 and %d days", ErrInvalidInput, domain.MaxBookingWindowDays)
	}
	if s.SameDayCutoffHours < 0 || s.SameDayCutoffHours > domain.MaxSameDayCutoffHours {
		return fmt.Errorf("%w: same-day cutoff must be between 0 and %d hours", ErrInvalidInput, domain.MaxSameDayCutoffHours)
	}
	if s.SlotDurationMinutes < domain.MinSlotDurationMinutes || s.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	if err := s.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: open time: %v", ErrInvalidInput, err)
	}
	if err := s.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: close time: %v", ErrInvalidInput, err)
	}
	if !s.OpenTime.IsBefore(s.CloseTime) {
		return fmt.Errorf("%w: open time must be before close time", ErrInvalidInput)
	}
	if _, err := calendar.New(s).DaySlots(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// ValidateCapacity проверяет значение вместимости (0 допустим и означает закрытый слот)
func ValidateCapacity(capacity int) error {
	if err := validateCapacity(capacity); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func validateCapacity(capacity int) error {
	if capacity < 0 || capacity > domain.MaxCapacity {
		return fmt.Errorf("capacity must be between 0 and %d", domain.MaxCapacity)
	}
	return nil
}
