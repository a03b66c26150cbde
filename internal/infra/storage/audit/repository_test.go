package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
)

func TestRepository_CreateDeleteEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO reservation_audit \(reservation_id,action,before,after\)`).
		WithArgs(int64(7), "delete", `{"id":7}`, sql.NullString{}).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), now))

	entry, err := repo.Create(context.Background(), &domain.AuditEntry{
		ReservationID: 7,
		Action:        domain.AuditDelete,
		Before:        json.RawMessage(`{"id":7}`),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByReservation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM reservation_audit WHERE reservation_id = \$1 ORDER BY created_at ASC, id ASC`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reservation_id", "action", "before", "after", "created_at"}).
			AddRow(int64(1), int64(7), "set_status", []byte(`{"status":"approved"}`), []byte(`{"status":"completed"}`), now).
			AddRow(int64(2), int64(7), "delete", []byte(`{"status":"completed"}`), nil, now))

	entries, err := repo.ListByReservation(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.AuditSetStatus, entries[0].Action)
	assert.JSONEq(t, `{"status":"completed"}`, string(entries[0].After))
	assert.Nil(t, entries[1].After)
}
