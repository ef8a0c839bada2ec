package catalog

import (
	"context"
	"database/sql"
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

func TestRepository_List_ActiveOnly(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM services WHERE is_active = \$1 ORDER BY display_order ASC, id ASC`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(1, "Gel manicure", 60, 35.5, true, 1, false, now, now).
			AddRow(2, "Call-out", 90, nil, true, 2, true, now, now))

	list, err := repo.List(context.Background(), true)

	require.NoError(t, err)
	require.Len(t, list, 2)
	require.NotNil(t, list[0].Price)
	assert.Equal(t, 35.5, *list[0].Price)
	assert.Nil(t, list[1].Price)
	assert.True(t, list[1].IsCallOut)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT .* FROM services WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 7)

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestRepository_Update_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`UPDATE services`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}))

	_, err := repo.Update(context.Background(), &domain.Service{ID: 7, Name: "x", DurationMinutes: 30})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}
