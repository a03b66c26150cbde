package equipment

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
)

const availabilityJSON = `{"rules":[{"dayOfWeek":1,"openMinute":540,"closeMinute":1020}],"advanceDays":7,"minDurationMinutes":30,"maxDurationMinutes":120}`

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM equipment WHERE id = $1`)).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			int64(3), "Confocal", "Zeiss LSM", []byte(availabilityJSON), false, true,
			"per_hour", 10.0, 2.5, true, "Alice\nBob", now, now,
		))

	eq, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Confocal", eq.Name)
	assert.Equal(t, domain.PriceTypePerHour, eq.PriceType)
	assert.Equal(t, 2.5, eq.ConsumableFee)
	assert.Equal(t, []string{"Alice", "Bob"}, eq.WhitelistEntries())

	availability, err := eq.AvailabilityOrDefault()
	require.NoError(t, err)
	assert.Equal(t, 120, availability.MaxDurationMinutes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`FROM equipment WHERE id = \$1`).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrEquipmentNotFound)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO equipment`).
		WithArgs("Confocal", "", availabilityJSON, false, true, "per_use", 50.0, 0.0, false, "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(5), now, now))

	eq, err := repo.Create(context.Background(), &domain.Equipment{
		Name:               "Confocal",
		AvailabilityConfig: []byte(availabilityJSON),
		AutoApprove:        true,
		PriceType:          domain.PriceTypePerUse,
		Price:              50,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), eq.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateWhitelist(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE equipment SET whitelist = $1, updated_at = NOW() WHERE id = $2`)).
		WithArgs("Alice\nBob", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateWhitelist(context.Background(), 3, "Alice\nBob"))

	mock.ExpectExec(`UPDATE equipment`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateWhitelist(context.Background(), 4, ""), ErrEquipmentNotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`DELETE FROM equipment WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 3), ErrEquipmentNotFound)
}
