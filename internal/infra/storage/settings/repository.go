package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotCapacity/pkg/psqlbuilder"
)

const (
	table = "shop_settings"

	// singletonID единственная строка настроек магазина
	singletonID = 1
)

const upsertSuffix = `ON CONFLICT (id) DO UPDATE SET
	capacity_mon_wed = EXCLUDED.capacity_mon_wed,
	capacity_thu_sun = EXCLUDED.capacity_thu_sun,
	booking_window_days = EXCLUDED.booking_window_days,
	same_day_cutoff_hours = EXCLUDED.same_day_cutoff_hours,
	open_time = EXCLUDED.open_time,
	close_time = EXCLUDED.close_time,
	slot_duration_minutes = EXCLUDED.slot_duration_minutes,
	require_confirmation = EXCLUDED.require_confirmation,
	updated_at = NOW()
RETURNING updated_at`

// Repository репозиторий настроек магазина
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает настройки магазина
func (r *Repository) Get(ctx context.Context) (*domain.ShopSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"capacity_mon_wed",
		"capacity_thu_sun",
		"booking_window_days",
		"same_day_cutoff_hours",
		"open_time",
		"close_time",
		"slot_duration_minutes",
		"require_confirmation",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"id": singletonID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.ShopSettings
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.Capacity.MonWed,
		&s.Capacity.ThuSun,
		&s.BookingWindowDays,
		&s.SameDayCutoffHours,
		&s.OpenTime,
		&s.CloseTime,
		&s.SlotDurationMinutes,
		&s.RequireConfirmation,
		&s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	return &s, nil
}

// Upsert сохраняет настройки магазина целиком
func (r *Repository) Upsert(ctx context.Context, s domain.ShopSettings) (*domain.ShopSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"capacity_mon_wed",
			"capacity_thu_sun",
			"booking_window_days",
			"same_day_cutoff_hours",
			"open_time",
			"close_time",
			"slot_duration_minutes",
			"require_confirmation",
		).
		Values(
			singletonID,
			s.Capacity.MonWed,
			s.Capacity.ThuSun,
			s.BookingWindowDays,
			s.SameDayCutoffHours,
			s.OpenTime,
			s.CloseTime,
			s.SlotDurationMinutes,
			s.RequireConfirmation,
		).
		Suffix(upsertSuffix).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	return &s, nil
}
