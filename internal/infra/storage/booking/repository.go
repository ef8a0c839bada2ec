package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotCapacity/pkg/pgerr"
	"github.com/m04kA/SMC-SlotCapacity/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SlotCapacity/pkg/types"
)

const table = "bookings"

var columns = []string{
	"id",
	"ticket_number",
	"status",
	"source",
	"appointment_date",
	"appointment_time",
	"slot_duration",
	"customer_name",
	"customer_email",
	"customer_phone",
	"service_id",
	"booking_for_name",
	"special_request",
	"admin_notes",
	"inspiration_photos",
	"is_prepaid",
	"skip_notification",
	"over_capacity",
	"confirmed_at",
	"completed_at",
	"cancelled_at",
	"cancellation_reason",
	"cancelled_by",
	"created_at",
	"updated_at",
}

var returningAll = "RETURNING " + strings.Join(columns, ", ")

// StatusChange описывает переход статуса и сопутствующие поля
type StatusChange struct {
	To          domain.BookingStatus
	Reason      *string // только для cancelled
	CancelledBy *string // только для cancelled
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Проверка вместимости выполняется вызывающим кодом под блокировкой слота,
// репозиторий только вставляет строку (в транзакции из контекста, если она есть).
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	photos := booking.InspirationPhotos
	if photos == nil {
		photos = []string{}
	}

	insert := psqlbuilder.Insert(table).
		Columns(
			"ticket_number",
			"status",
			"source",
			"appointment_date",
			"appointment_time",
			"slot_duration",
			"customer_name",
			"customer_email",
			"customer_phone",
			"service_id",
			"booking_for_name",
			"special_request",
			"admin_notes",
			"inspiration_photos",
			"is_prepaid",
			"skip_notification",
			"over_capacity",
			"confirmed_at",
			"completed_at",
		).
		Values(
			booking.TicketNumber,
			booking.Status,
			booking.Source,
			booking.AppointmentDate,
			booking.AppointmentTime,
			booking.SlotDuration,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			booking.ServiceID,
			booking.BookingForName,
			booking.SpecialRequest,
			booking.AdminNotes,
			pq.StringArray(photos),
			booking.IsPrepaid,
			booking.SkipNotification,
			booking.OverCapacity,
			booking.ConfirmedAt,
			booking.CompletedAt,
		).
		Suffix("RETURNING id, created_at, updated_at")

	query, args, err := insert.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTicket, booking.TicketNumber)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.InspirationPhotos = photos
	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByTicket получает бронирование по номеру билета
func (r *Repository) GetByTicket(ctx context.Context, ticketNumber string) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByTicket", squirrel.Eq{"ticket_number": ticketNumber})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
	}

	return booking, nil
}

// List получает бронирования по фильтру (отчёты, админка).
// Для одной даты сортировка по времени, для периода - по дате и времени.
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("appointment_date ASC", "appointment_time ASC", "id ASC")

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": *filter.EndDate})
	}
	if filter.ServiceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *filter.ServiceID})
	}
	if filter.CustomerEmail != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_email": *filter.CustomerEmail})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": statusStrings(domain.InactiveStatuses)})
	}

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(filter.Offset)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// CountActiveBySlot считает неотменённые бронирования в слоте.
// serviceID ограничивает подсчёт одной услугой (фильтр витрины).
func (r *Repository) CountActiveBySlot(ctx context.Context, date time.Time, slot types.TimeString, serviceID *int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"appointment_date": date, "appointment_time": slot}).
		Where(squirrel.NotEq{"status": statusStrings(domain.InactiveStatuses)})

	if serviceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *serviceID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlot - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlot - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountActiveGrouped считает неотменённые бронирования по слотам за период [from, to]
func (r *Repository) CountActiveGrouped(ctx context.Context, from, to time.Time, serviceID *int64) ([]domain.SlotOccupancy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("appointment_date", "appointment_time", "COUNT(*)").
		From(table).
		Where(squirrel.GtOrEq{"appointment_date": from}).
		Where(squirrel.LtOrEq{"appointment_date": to}).
		Where(squirrel.NotEq{"status": statusStrings(domain.InactiveStatuses)}).
		GroupBy("appointment_date", "appointment_time").
		OrderBy("appointment_date ASC", "appointment_time ASC")

	if serviceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *serviceID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveGrouped - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveGrouped - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.SlotOccupancy, 0)
	for rows.Next() {
		var occ domain.SlotOccupancy
		if err := rows.Scan(&occ.Date, &occ.Time, &occ.Count); err != nil {
			return nil, fmt.Errorf("%w: CountActiveGrouped - scan row: %v", ErrScanRow, err)
		}
		result = append(result, occ)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountActiveGrouped - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// UpdateStatus переводит бронирование в новый статус, только если текущий статус входит в from.
// Условие в WHERE делает переход атомарным: при гонке двух переходов второй получит ErrStatusConflict.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from []domain.BookingStatus, change StatusChange) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	update := psqlbuilder.Update(table).
		Set("status", change.To).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": statusStrings(from)})

	// После выхода из pending заполнена ровно одна из отметок confirmed_at, completed_at, cancelled_at
	switch change.To {
	case domain.StatusConfirmed:
		update = update.Set("confirmed_at", squirrel.Expr("NOW()"))
	case domain.StatusCompleted:
		update = update.
			Set("confirmed_at", nil).
			Set("completed_at", squirrel.Expr("NOW()"))
	case domain.StatusCancelled:
		update = update.
			Set("confirmed_at", nil).
			Set("cancelled_at", squirrel.Expr("NOW()")).
			Set("cancellation_reason", change.Reason).
			Set("cancelled_by", change.CancelledBy)
	}

	query, args, err := update.Suffix(returningAll).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStatusConflict
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// UpdateAdminNotes обновляет заметки администратора
func (r *Repository) UpdateAdminNotes(ctx context.Context, id int64, notes *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("admin_notes", notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateAdminNotes - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateAdminNotes - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateAdminNotes - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var photos pq.StringArray

	err := row.Scan(
		&b.ID,
		&b.TicketNumber,
		&b.Status,
		&b.Source,
		&b.AppointmentDate,
		&b.AppointmentTime,
		&b.SlotDuration,
		&b.CustomerName,
		&b.CustomerEmail,
		&b.CustomerPhone,
		&b.ServiceID,
		&b.BookingForName,
		&b.SpecialRequest,
		&b.AdminNotes,
		&photos,
		&b.IsPrepaid,
		&b.SkipNotification,
		&b.OverCapacity,
		&b.ConfirmedAt,
		&b.CompletedAt,
		&b.CancelledAt,
		&b.CancellationReason,
		&b.CancelledBy,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.InspirationPhotos = []string(photos)
	return &b, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
