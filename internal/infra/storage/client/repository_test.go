package client

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_GetOrCreate_ExistingByEmail(t *testing.T) {
	repo, mock := newRepo(t)
	salonID, clientID := uuid.New(), uuid.New()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM clients WHERE salon_id = \$1 AND lower\(email\) = \$2 LIMIT 1`).
		WithArgs(salonID, "anna@example.com").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(clientID.String(), salonID.String(), "Anna", "Ivanova", "anna@example.com", nil, created))

	got, err := repo.GetOrCreate(context.Background(), salonID, domain.ClientContact{
		FirstName: "Anna", LastName: "Ivanova", Email: "  Anna@Example.com ",
	})
	require.NoError(t, err)
	assert.Equal(t, clientID, got.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetOrCreate_CreatesNew(t *testing.T) {
	repo, mock := newRepo(t)
	salonID := uuid.New()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM clients`).WillReturnRows(sqlmock.NewRows(columns))
	mock.ExpectQuery(`INSERT INTO clients \(id,salon_id,first_name,last_name,email,phone\)`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	got, err := repo.GetOrCreate(context.Background(), salonID, domain.ClientContact{
		FirstName: " Oleg ", LastName: "Petrov", Email: "OLEG@example.com",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "Oleg", got.FirstName)
	assert.Equal(t, "oleg@example.com", got.Email)
	assert.Equal(t, created, got.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`FROM clients WHERE id = \$1`).WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrClientNotFound)
}
