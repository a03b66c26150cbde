package audit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	"github.com/m04kA/SMC-LabBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LabBookingService/pkg/psqlbuilder"
)

const tableName = "reservation_audit"

// Repository журнал административных изменений бронирований (только добавление)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория аудита
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись в журнал
func (r *Repository) Create(ctx context.Context, entry *domain.AuditEntry) (*domain.AuditEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var after sql.NullString
	if entry.After != nil {
		after = sql.NullString{String: string(entry.After), Valid: true}
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("reservation_id", "action", "before", "after").
		Values(entry.ReservationID, string(entry.Action), string(entry.Before), after).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	return entry, nil
}

// ListByReservation возвращает журнал бронирования в хронологическом порядке
func (r *Repository) ListByReservation(ctx context.Context, reservationID int64) ([]*domain.AuditEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "reservation_id", "action", "before", "after", "created_at").
		From(tableName).
		Where(squirrel.Eq{"reservation_id": reservationID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByReservation - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByReservation - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.AuditEntry, 0)
	for rows.Next() {
		var (
			entry         domain.AuditEntry
			action        string
			before, after []byte
		)
		if err := rows.Scan(&entry.ID, &entry.ReservationID, &action, &before, &after, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListByReservation - scan entry: %v", ErrScanRow, err)
		}
		entry.Action = domain.AuditAction(action)
		entry.Before = before
		entry.After = after
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByReservation - iterate rows: %v", ErrExecQuery, err)
	}
	return entries, nil
}
