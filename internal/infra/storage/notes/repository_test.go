package notes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO customer_notes \(customer_email,note,created_by\) VALUES \(\$1,\$2,\$3\) RETURNING id, created_at, updated_at`).
		WithArgs("anna@example.com", "prefers almond shape", "admin@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(3, now, now))

	n, err := repo.Create(context.Background(), &domain.CustomerNote{
		CustomerEmail: "anna@example.com",
		Note:          "prefers almond shape",
		CreatedBy:     "admin@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), n.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByEmail(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM customer_notes WHERE customer_email = \$1 ORDER BY created_at DESC, id DESC`).
		WithArgs("anna@example.com").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(2, "anna@example.com", "second", "admin", now, now).
			AddRow(1, "anna@example.com", "first", "admin", now, now))

	list, err := repo.ListByEmail(context.Background(), "anna@example.com")

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Note)
}

func TestRepository_ListByEmail_QueryError(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT .* FROM customer_notes`).WillReturnError(errors.New("connection reset"))

	_, err := repo.ListByEmail(context.Background(), "anna@example.com")

	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`DELETE FROM customer_notes WHERE id = \$1`).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 9), ErrNoteNotFound)
}
