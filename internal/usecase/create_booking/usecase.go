package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotCapacity/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SlotCapacity/internal/integrations/notifier"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/calendar"
	"github.com/m04kA/SMC-SlotCapacity/pkg/ptr"
	"github.com/m04kA/SMC-SlotCapacity/pkg/slotlock"
	"github.com/m04kA/SMC-SlotCapacity/pkg/ticket"
)

const (
	// DefaultAcquireTimeout ожидание блокировки слота, если в конфиге не задано
	DefaultAcquireTimeout = 3 * time.Second

	maxTicketAttempts = 3
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	availability   AvailabilityProvider
	rules          RulesProvider
	catalog        ServiceCatalog
	locker         Locker
	txManager      TransactionManager
	notifier       Notifier
	metrics        Metrics
	acquireTimeout time.Duration
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availability AvailabilityProvider,
	rules RulesProvider,
	catalog ServiceCatalog,
	locker Locker,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	acquireTimeout time.Duration,
	logger Logger,
) *UseCase {
	if acquireTimeout <= 0 {
		acquireTimeout = DefaultAcquireTimeout
	}
	return &UseCase{
		bookingRepo:    bookingRepo,
		availability:   availability,
		rules:          rules,
		catalog:        catalog,
		locker:         locker,
		txManager:      txManager,
		notifier:       notifier,
		metrics:        metrics,
		acquireTimeout: acquireTimeout,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute создает бронирование.
// Пересчёт занятости и вставка выполняются под блокировкой слота в сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: source=%s, date=%s, time=%s, service=%v, override=%t",
		req.Source, req.Date.Format(domain.DateFormat), req.Time, req.ServiceID, req.OverrideCapacity)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.BookingRejected("validation")
		return nil, err
	}

	now := uc.timeProvider.Now()
	date := calendar.Day(req.Date)

	// 2. Правила календаря: время должно быть слотом рабочего дня
	rules, err := uc.rules.Rules(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get rules: %v", ErrInternal, err)
	}

	ok, err := rules.HasSlot(req.Time)
	if err != nil {
		uc.logger.Error("CreateBooking: invalid schedule: %v", err)
		return nil, fmt.Errorf("%w: invalid schedule: %v", ErrInternal, err)
	}
	if !ok {
		uc.logger.Warn("CreateBooking: %s is not a slot of the working day", req.Time)
		uc.metrics.BookingRejected("validation")
		return nil, ErrInvalidTimeSlot
	}

	// 3. Окно бронирования проверяется только для публичной записи
	if !req.IsAdmin() && !rules.IsBookable(date, req.Time, now) {
		uc.logger.Warn("CreateBooking: %s %s is outside the booking window", date.Format(domain.DateFormat), req.Time)
		uc.metrics.BookingRejected("invalid_date")
		return nil, fmt.Errorf("%w: %s %s is not bookable", ErrInvalidDate, date.Format(domain.DateFormat), req.Time)
	}

	// 4. Длительность берётся из услуги, иначе из настроек
	duration := rules.Settings().SlotDurationMinutes
	if req.ServiceID != nil {
		service, err := uc.getService(ctx, *req.ServiceID, req.IsAdmin())
		if err != nil {
			return nil, err
		}
		duration = service.DurationMinutes
	}

	// 5. Блокировка слота
	release, err := uc.lock(ctx, date, req)
	if err != nil {
		return nil, err
	}
	defer release()

	var (
		result *domain.Booking
		state  domain.TimeSlot
	)

	// 6. Пересчёт занятости и вставка
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slot, capacity, err := uc.availability.Slot(txCtx, rules, date, req.Time)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get slot state: %v", err)
			return fmt.Errorf("%w: failed to get slot state: %v", ErrInternal, err)
		}
		state = slot

		full := capacity.IsBlocked() || slot.AvailableCount == 0
		if full && !req.OverrideCapacity {
			uc.logger.Warn("CreateBooking: slot %s %s is full, %d/%d taken, blocked=%t",
				date.Format(domain.DateFormat), req.Time, slot.BookedCount, slot.TotalCapacity, capacity.IsBlocked())
			return ErrSlotFull
		}

		booking := newBooking(req, date, duration, rules.Settings().RequireConfirmation, now)
		booking.OverCapacity = full

		created, err := uc.insert(txCtx, booking)
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotFull) {
			uc.metrics.BookingRejected("slot_full")
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d ticket=%s status=%s over_capacity=%t",
		result.ID, result.TicketNumber, result.Status, result.OverCapacity)

	uc.metrics.BookingCreated(string(result.Source), result.OverCapacity)

	// Задним числом запись только учётная, клиенту сообщать не о чем
	if result.Status != domain.StatusCompleted {
		uc.notifier.Notify(notifier.EventCreated, result)
	}

	return &Response{Booking: result, Slot: state}, nil
}

// getService проверяет услугу; выключенные услуги доступны только админу
func (uc *UseCase) getService(ctx context.Context, id int64, isAdmin bool) (*domain.Service, error) {
	service, err := uc.catalog.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive && !isAdmin {
		uc.logger.Warn("CreateBooking: service id=%d is inactive", id)
		return nil, ErrServiceNotFound
	}
	return service, nil
}

// lock захватывает блокировку слота; таймаут означает, что слот занят конкурирующим запросом
func (uc *UseCase) lock(ctx context.Context, date time.Time, req *Request) (slotlock.ReleaseFunc, error) {
	lockCtx, cancel := context.WithTimeout(ctx, uc.acquireTimeout)
	defer cancel()

	started := time.Now()
	release, err := uc.locker.Acquire(lockCtx, slotlock.Key(date.Format(domain.DateFormat), req.Time.String()))
	if err != nil {
		if errors.Is(err, slotlock.ErrLockTimeout) && ctx.Err() == nil {
			uc.metrics.SlotLockWait("timeout", time.Since(started))
			uc.metrics.BookingRejected("lock_timeout")
			uc.logger.Warn("CreateBooking: lock timeout for %s %s", date.Format(domain.DateFormat), req.Time)
			return nil, fmt.Errorf("%w: slot is busy, try again", ErrSlotFull)
		}
		uc.logger.Error("CreateBooking: failed to acquire slot lock: %v", err)
		return nil, fmt.Errorf("%w: failed to acquire slot lock: %v", ErrInternal, err)
	}

	uc.metrics.SlotLockWait("acquired", time.Since(started))
	return release, nil
}

// insert сохраняет бронирование, при коллизии номера талона генерирует новый
func (uc *UseCase) insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	for attempt := 1; ; attempt++ {
		booking.TicketNumber = ticket.New(booking.AppointmentDate)

		created, err := uc.bookingRepo.Create(ctx, booking)
		if err == nil {
			return created, nil
		}

		if errors.Is(err, bookingRepo.ErrDuplicateTicket) && attempt < maxTicketAttempts {
			uc.logger.Warn("CreateBooking: ticket %s already taken, attempt %d", booking.TicketNumber, attempt)
			continue
		}

		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}
}

// newBooking начальный статус: прошедшая дата из админки - completed,
// иначе pending, если магазин требует подтверждения, и confirmed в остальных случаях.
// Запись из админки на будущее сразу подтверждена.
func newBooking(req *Request, date time.Time, duration int, requireConfirmation bool, now time.Time) *domain.Booking {
	b := &domain.Booking{
		Source:            req.Source,
		AppointmentDate:   date,
		AppointmentTime:   req.Time,
		SlotDuration:      duration,
		CustomerName:      req.CustomerName,
		CustomerEmail:     req.CustomerEmail,
		CustomerPhone:     req.CustomerPhone,
		ServiceID:         req.ServiceID,
		BookingForName:    req.BookingForName,
		SpecialRequest:    req.SpecialRequest,
		AdminNotes:        req.AdminNotes,
		InspirationPhotos: req.InspirationPhotos,
		IsPrepaid:         req.IsPrepaid,
		SkipNotification:  req.SkipNotification,
	}

	switch {
	case req.IsAdmin() && date.Before(calendar.Day(now)):
		b.Status = domain.StatusCompleted
		b.CompletedAt = ptr.Ptr(now)
	case req.IsAdmin() || !requireConfirmation:
		b.Status = domain.StatusConfirmed
		b.ConfirmedAt = ptr.Ptr(now)
	default:
		b.Status = domain.StatusPending
	}

	return b
}
