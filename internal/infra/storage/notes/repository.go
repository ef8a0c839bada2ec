package notes

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

const table = "customer_notes"

var columns = []string{
	"id",
	"customer_email",
	"note",
	"created_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий заметок о клиентах
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заметок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет заметку
func (r *Repository) Create(ctx context.Context, n *domain.CustomerNote) (*domain.CustomerNote, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("customer_email", "note", "created_by").
		Values(n.CustomerEmail, n.Note, n.CreatedBy).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return n, nil
}

// ListByEmail получает заметки клиента, новые первыми
func (r *Repository) ListByEmail(ctx context.Context, email string) ([]*domain.CustomerNote, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"customer_email": email}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEmail - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEmail - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.CustomerNote, 0)
	for rows.Next() {
		var n domain.CustomerNote
		if err := rows.Scan(&n.ID, &n.CustomerEmail, &n.Note, &n.CreatedBy, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListByEmail - scan row: %v", ErrScanRow, err)
		}
		result = append(result, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByEmail - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// UpdateText меняет текст заметки
func (r *Repository) UpdateText(ctx context.Context, id int64, text string) (*domain.CustomerNote, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("note", text).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, customer_email, note, created_by, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateText - build update query: %v", ErrBuildQuery, err)
	}

	var n domain.CustomerNote
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&n.ID, &n.CustomerEmail, &n.Note, &n.CreatedBy, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateText - execute update: %v", ErrExecQuery, err)
	}

	return &n, nil
}

// Delete удаляет заметку
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrNoteNotFound
	}

	return nil
}
