package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotCapacity/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SlotCapacity/internal/integrations/notifier"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/bookings/models"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/calendar"
	"github.com/m04kA/SMC-SlotCapacity/pkg/ptr"
	"github.com/m04kA/SMC-SlotCapacity/pkg/ticket"
	"github.com/m04kA/SMC-SlotCapacity/pkg/types"
)

// Service жизненный цикл бронирований: переходы статусов, отчёты и проверка влияния
// изменения вместимости. Создание бронирования - usecase create_booking.
type Service struct {
	bookingRepo BookingRepository
	settings    SettingsProvider
	notifier    Notifier
	metrics     Metrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	settings SettingsProvider,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		settings:    settings,
		notifier:    notifier,
		metrics:     metrics,
		logger:      logger,
	}
}

// Get получает бронирование по ID
func (s *Service) Get(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Get: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Get: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}
	return booking, nil
}

// GetByTicket получает бронирование по номеру билета
func (s *Service) GetByTicket(ctx context.Context, ticketNumber string) (*domain.Booking, error) {
	ticketNumber = strings.ToUpper(strings.TrimSpace(ticketNumber))
	if !ticket.Valid(ticketNumber) {
		return nil, fmt.Errorf("%w: malformed ticket number", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByTicket(ctx, ticketNumber)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByTicket: ticket %s not found", ticketNumber)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByTicket: repository error for ticket %s: %v", ticketNumber, err)
		return nil, fmt.Errorf("%w: GetByTicket - repository error: %v", ErrInternal, err)
	}
	return booking, nil
}

// List получает бронирования по фильтру для отчётов
//
// Примеры использования:
// - Все активные бронирования на дату: StartDate и EndDate указывают на одну дату
// - Только завершённые за период: Status = "completed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) List(ctx context.Context, req *models.ListRequest) ([]*domain.Booking, error) {
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		s.logger.Warn("List: end date before start date")
		return nil, fmt.Errorf("%w: end date before start date", ErrInvalidDate)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	if filter.StartDate != nil {
		filter.StartDate = ptr.Ptr(calendar.Day(*filter.StartDate))
	}
	if filter.EndDate != nil {
		filter.EndDate = ptr.Ptr(calendar.Day(*filter.EndDate))
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings", len(bookings))
	return bookings, nil
}

// Confirm pending -> confirmed
func (s *Service) Confirm(ctx context.Context, id int64) (*domain.Booking, error) {
	check := func(b *domain.Booking) error {
		if b.IsTerminal() {
			return ErrAlreadyTerminal
		}
		if !b.CanBeConfirmed() {
			return ErrInvalidTransition
		}
		return nil
	}

	return s.transition(ctx, "Confirm", id, check,
		[]domain.BookingStatus{domain.StatusPending},
		bookingRepo.StatusChange{To: domain.StatusConfirmed},
		"")
}

// Complete confirmed -> completed, а если подтверждение не требуется, то и pending -> completed
func (s *Service) Complete(ctx context.Context, id int64) (*domain.Booking, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		s.logger.Error("Complete: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: Complete - settings: %v", ErrInternal, err)
	}

	from := []domain.BookingStatus{domain.StatusConfirmed}
	if !settings.RequireConfirmation {
		from = append(from, domain.StatusPending)
	}

	check := func(b *domain.Booking) error {
		if b.IsTerminal() {
			return ErrAlreadyTerminal
		}
		if !b.CanBeCompleted(settings.RequireConfirmation) {
			return fmt.Errorf("%w: booking must be confirmed first", ErrInvalidTransition)
		}
		return nil
	}

	return s.transition(ctx, "Complete", id, check, from,
		bookingRepo.StatusChange{To: domain.StatusCompleted},
		notifier.EventCompleted)
}

// Cancel pending|confirmed -> cancelled. Освободившееся место учитывается автоматически:
// отменённые бронирования не входят в подсчёт занятости.
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelRequest) (*domain.Booking, error) {
	if err := validateCancel(req); err != nil {
		s.logger.Warn("Cancel: validation failed for booking id=%d: %v", id, err)
		return nil, err
	}

	if req.CustomerEmail != nil {
		booking, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if !strings.EqualFold(booking.CustomerEmail, *req.CustomerEmail) {
			s.logger.Warn("Cancel: %s is not the owner of booking id=%d", *req.CustomerEmail, id)
			return nil, ErrAccessDenied
		}
	}

	return s.cancel(ctx, "Cancel", id, req.Reason, req.CancelledBy, notifier.EventCancelled)
}

// MarkNoShow фиксирует неявку клиента: отмена с причиной no_show, без уведомления клиенту
func (s *Service) MarkNoShow(ctx context.Context, id int64, markedBy string) (*domain.Booking, error) {
	if strings.TrimSpace(markedBy) == "" {
		return nil, fmt.Errorf("%w: markedBy is required", ErrInvalidInput)
	}
	return s.cancel(ctx, "MarkNoShow", id, domain.NoShowReason, markedBy, "")
}

func (s *Service) cancel(ctx context.Context, op string, id int64, reason, cancelledBy string, event notifier.EventType) (*domain.Booking, error) {
	check := func(b *domain.Booking) error {
		if b.IsTerminal() {
			return ErrAlreadyTerminal
		}
		if !b.CanBeCancelled() {
			return ErrInvalidTransition
		}
		return nil
	}

	change := bookingRepo.StatusChange{
		To:          domain.StatusCancelled,
		CancelledBy: ptr.Ptr(cancelledBy),
	}
	if reason != "" {
		change.Reason = ptr.Ptr(reason)
	}

	return s.transition(ctx, op, id, check,
		[]domain.BookingStatus{domain.StatusPending, domain.StatusConfirmed},
		change, event)
}

// transition проверяет переход по текущему состоянию и выполняет условное обновление.
// Если статус успели изменить параллельно, состояние перечитывается и ошибка
// определяется по актуальному статусу.
func (s *Service) transition(
	ctx context.Context,
	op string,
	id int64,
	check func(b *domain.Booking) error,
	from []domain.BookingStatus,
	change bookingRepo.StatusChange,
	event notifier.EventType,
) (*domain.Booking, error) {
	s.logger.Info("%s: booking id=%d -> %s", op, id, change.To)

	booking, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := check(booking); err != nil {
		s.logger.Warn("%s: booking id=%d rejected in status=%s: %v", op, id, booking.Status, err)
		return nil, err
	}

	updated, err := s.bookingRepo.UpdateStatus(ctx, id, from, change)
	if err != nil {
		if !errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
			return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}

		current, getErr := s.Get(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		s.logger.Warn("%s: booking id=%d changed concurrently, now status=%s", op, id, current.Status)
		if checkErr := check(current); checkErr != nil {
			return nil, checkErr
		}
		return nil, ErrInvalidTransition
	}

	s.metrics.BookingTransition(string(change.To))
	if event != "" {
		s.notifier.Notify(event, updated)
	}

	s.logger.Info("%s: booking id=%d is now %s", op, id, updated.Status)
	return updated, nil
}

// UpdateAdminNotes обновляет заметки администратора к бронированию
func (s *Service) UpdateAdminNotes(ctx context.Context, id int64, notes *string) (*domain.Booking, error) {
	if notes != nil && len(*notes) > domain.MaxAdminNotesLength {
		return nil, fmt.Errorf("%w: admin notes must be at most %d characters", ErrInvalidInput, domain.MaxAdminNotesLength)
	}

	if err := s.bookingRepo.UpdateAdminNotes(ctx, id, notes); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateAdminNotes: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateAdminNotes - repository error: %v", ErrInternal, err)
	}

	return s.Get(ctx, id)
}

// CheckImpactOfCapacityChange считает, сколько неотменённых бронирований не поместится
// в новую вместимость. Бронирования никогда не отменяются: изменение вместимости не ретроактивно.
func (s *Service) CheckImpactOfCapacityChange(ctx context.Context, req *models.ImpactRequest) (*models.ImpactResponse, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidDate)
	}
	if req.NewCapacity < 0 {
		return nil, fmt.Errorf("%w: capacity must not be negative", ErrInvalidInput)
	}

	date := calendar.Day(req.Date)
	resp := &models.ImpactResponse{
		Date:        date.Format(domain.DateFormat),
		NewCapacity: req.NewCapacity,
		Slots:       []models.SlotImpact{},
	}

	if !req.IsWholeDay() {
		slot := *req.TimeSlot
		resp.TimeSlot = ptr.Ptr(slot.String())

		count, err := s.bookingRepo.CountActiveBySlot(ctx, date, slot, nil)
		if err != nil {
			s.logger.Error("CheckImpactOfCapacityChange: repository error: %v", err)
			return nil, fmt.Errorf("%w: CheckImpactOfCapacityChange - repository error: %v", ErrInternal, err)
		}

		resp.BookedCount = count
		if count > req.NewCapacity {
			resp.Conflict = true
			resp.Slots = append(resp.Slots, models.SlotImpact{Time: slot.String(), BookedCount: count})
		}
		return resp, nil
	}

	occupancy, err := s.bookingRepo.CountActiveGrouped(ctx, date, date, nil)
	if err != nil {
		s.logger.Error("CheckImpactOfCapacityChange: repository error: %v", err)
		return nil, fmt.Errorf("%w: CheckImpactOfCapacityChange - repository error: %v", ErrInternal, err)
	}

	excluded := make(map[types.TimeString]struct{}, len(req.ExcludeSlots))
	for _, slot := range req.ExcludeSlots {
		excluded[slot] = struct{}{}
	}

	for _, occ := range occupancy {
		if _, skip := excluded[occ.Time]; skip {
			continue
		}
		if occ.Count > resp.BookedCount {
			resp.BookedCount = occ.Count
		}
		if occ.Count > req.NewCapacity {
			resp.Conflict = true
			resp.Slots = append(resp.Slots, models.SlotImpact{Time: occ.Time.String(), BookedCount: occ.Count})
		}
	}

	if resp.Conflict {
		s.logger.Warn("CheckImpactOfCapacityChange: %s capacity=%d conflicts with %d slot(s), max booked=%d",
			resp.Date, req.NewCapacity, len(resp.Slots), resp.BookedCount)
	}
	return resp, nil
}

func validateCancel(req *models.CancelRequest) error {
	if strings.TrimSpace(req.CancelledBy) == "" {
		return fmt.Errorf("%w: cancelledBy is required", ErrInvalidInput)
	}
	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}
	return nil
}
