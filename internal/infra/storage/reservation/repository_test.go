package reservation

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	"github.com/m04kA/SMC-LabBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LabBookingService/pkg/ptr"
)

var start = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func reservationRow(id int64, code string, status domain.ReservationStatus) []driver.Value {
	return []driver.Value{
		id, int64(1), "Alice", "S1", "Prof. Lee", "123", "alice@lab.edu",
		start, start.Add(time.Hour), string(status), code,
		nil, nil, 0.0, nil, 0, false, start.Add(-time.Hour), start.Add(-time.Hour),
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMock(t)

	created := start.Add(-time.Hour)
	mock.ExpectQuery(`INSERT INTO reservations \(equipment_id,student_name`).
		WithArgs(int64(1), "Alice", "S1", "", "", "", start, start.Add(time.Hour), "approved", "ABCD1234", 0.0, 0, false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(42), created, created))

	r := &domain.Reservation{
		EquipmentID:    1,
		Requester:      domain.Requester{Name: "Alice", StudentID: "S1"},
		RequestedStart: start,
		RequestedEnd:   start.Add(time.Hour),
		Status:         domain.StatusApproved,
		BookingCode:    "ABCD1234",
	}

	got, err := repo.Create(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ID)
	assert.True(t, got.CreatedAt.Equal(created))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_ExclusionViolation(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO reservations`).
		WillReturnError(&pq.Error{Code: "23P01", Constraint: "reservations_no_overlap"})

	_, err := repo.Create(context.Background(), &domain.Reservation{Status: domain.StatusPending})
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.True(t, IsConflict(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_DuplicateCode(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO reservations`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "reservations_booking_code_uidx"})

	_, err := repo.Create(context.Background(), &domain.Reservation{Status: domain.StatusPending})
	assert.ErrorIs(t, err, ErrDuplicateCode)
	assert.False(t, IsConflict(err))
}

func TestRepository_GetByCode(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM reservations WHERE LOWER(booking_code) = LOWER($1)`)).
		WithArgs("abcd1234").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(reservationRow(7, "ABCD1234", domain.StatusApproved)...))

	got, err := repo.GetByCode(context.Background(), " abcd1234 ")
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "ABCD1234", got.BookingCode)
	assert.Equal(t, domain.StatusApproved, got.Status)
	assert.Equal(t, "Prof. Lee", got.Requester.Supervisor)
	assert.Nil(t, got.ActualStart)
	assert.Nil(t, got.TotalCost)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`FROM reservations WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestRepository_GetByID_LocksInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM reservations WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(reservationRow(7, "ABCD1234", domain.StatusActive)...))
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), &dbmetrics.SqlTxWrapper{Tx: tx})

	got, err := repo.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, got.Status)
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindOverlapping(t *testing.T) {
	repo, mock := newMock(t)

	window := domain.TimeRange{Start: start, End: start.Add(time.Hour)}
	mock.ExpectQuery(regexp.QuoteMeta(
		`WHERE (equipment_id = $1 AND status IN ($2,$3,$4) AND requested_start < $5 AND requested_end > $6 AND id <> $7)`)).
		WithArgs(int64(1), "pending", "approved", "active", window.End, window.Start, int64(7)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(reservationRow(8, "EEEE0000", domain.StatusPending)...))

	got, err := repo.FindOverlapping(context.Background(), 1, window, 7)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(8), got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	repo, mock := newMock(t)

	actual := start.Add(5 * time.Minute)
	r := &domain.Reservation{
		ID:             7,
		RequestedStart: start,
		RequestedEnd:   start.Add(time.Hour),
		Status:         domain.StatusCompleted,
		ActualStart:    &actual,
		ActualEnd:      ptr.Ptr(actual.Add(time.Hour)),
		TotalCost:      ptr.Ptr(20.0),
	}

	updated := start.Add(2 * time.Hour)
	mock.ExpectQuery(`UPDATE reservations SET requested_start = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(updated))

	require.NoError(t, repo.Update(context.Background(), r))
	assert.True(t, r.UpdatedAt.Equal(updated))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update_NotFoundAndConflict(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`UPDATE reservations`).WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))
	err := repo.Update(context.Background(), &domain.Reservation{ID: 1, Status: domain.StatusApproved})
	assert.ErrorIs(t, err, ErrReservationNotFound)

	mock.ExpectQuery(`UPDATE reservations`).WillReturnError(&pq.Error{Code: "40001"})
	err = repo.Update(context.Background(), &domain.Reservation{ID: 1, Status: domain.StatusApproved})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`DELETE FROM reservations WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), 7))

	mock.ExpectExec(`DELETE FROM reservations`).
		WithArgs(int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), 8), ErrReservationNotFound)
}

func TestRepository_CountOpenByEquipment(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM reservations WHERE equipment_id = $1 AND status IN ($2,$3,$4)`)).
		WithArgs(int64(3), "pending", "approved", "active").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountOpenByEquipment(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestIsConflict(t *testing.T) {
	commitErr := fmt.Errorf("txmanager: commit: %w", &pq.Error{Code: "40001"})
	assert.True(t, IsConflict(commitErr))
	assert.True(t, IsConflict(fmt.Errorf("%w: x", ErrSlotConflict)))
	assert.False(t, IsConflict(errors.New("boom")))
	assert.False(t, IsConflict(&pq.Error{Code: "23505"}))
}
