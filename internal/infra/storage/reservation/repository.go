package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	"github.com/m04kA/SMC-LabBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LabBookingService/pkg/psqlbuilder"
)

const tableName = "reservations"

var columns = []string{
	"id",
	"equipment_id",
	"student_name",
	"student_id",
	"supervisor",
	"phone",
	"email",
	"requested_start",
	"requested_end",
	"status",
	"booking_code",
	"actual_start",
	"actual_end",
	"consumable_quantity",
	"total_cost",
	"modified_count",
	"out_of_hours",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		r                      domain.Reservation
		status                 string
		actualStart, actualEnd sql.NullTime
		totalCost              sql.NullFloat64
		createdAt, updatedAt   sql.NullTime
	)

	err := row.Scan(
		&r.ID,
		&r.EquipmentID,
		&r.Requester.Name,
		&r.Requester.StudentID,
		&r.Requester.Supervisor,
		&r.Requester.Phone,
		&r.Requester.Email,
		&r.RequestedStart,
		&r.RequestedEnd,
		&status,
		&r.BookingCode,
		&actualStart,
		&actualEnd,
		&r.ConsumableQuantity,
		&totalCost,
		&r.ModifiedCount,
		&r.OutOfHours,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.Status = domain.ReservationStatus(status)
	if actualStart.Valid {
		t := actualStart.Time
		r.ActualStart = &t
	}
	if actualEnd.Valid {
		t := actualEnd.Time
		r.ActualEnd = &t
	}
	if totalCost.Valid {
		cost := totalCost.Float64
		r.TotalCost = &cost
	}
	r.CreatedAt = createdAt.Time
	r.UpdatedAt = updatedAt.Time

	return &r, nil
}

func openStatuses() []string {
	statuses := make([]string, 0, len(domain.OpenStatuses))
	for _, s := range domain.OpenStatuses {
		statuses = append(statuses, string(s))
	}
	return statuses
}

// Create создает новое бронирование.
// Нарушение exclusion constraint возвращается как ErrSlotConflict,
// коллизия кода бронирования как ErrDuplicateCode.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"equipment_id",
			"student_name",
			"student_id",
			"supervisor",
			"phone",
			"email",
			"requested_start",
			"requested_end",
			"status",
			"booking_code",
			"consumable_quantity",
			"modified_count",
			"out_of_hours",
		).
		Values(
			reservation.EquipmentID,
			reservation.Requester.Name,
			reservation.Requester.StudentID,
			reservation.Requester.Supervisor,
			reservation.Requester.Phone,
			reservation.Requester.Email,
			reservation.RequestedStart,
			reservation.RequestedEnd,
			string(reservation.Status),
			reservation.BookingCode,
			reservation.ConsumableQuantity,
			reservation.ModifiedCount,
			reservation.OutOfHours,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, mapWriteError("Create", err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByCode получает бронирование по коду без учета регистра.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Reservation, error) {
	return r.getOne(ctx, "GetByCode", squirrel.Expr("LOWER(booking_code) = LOWER(?)", strings.TrimSpace(code)))
}

func (r *Repository) getOne(ctx context.Context, method string, pred interface{}) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(pred)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan reservation: %v", ErrScanRow, method, err)
	}

	return reservation, nil
}

// CodeExists проверяет, занят ли код бронирования (без учета регистра)
func (r *Repository) CodeExists(ctx context.Context, code string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(tableName).
		Where(squirrel.Expr("LOWER(booking_code) = LOWER(?)", code)).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: CodeExists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: CodeExists - scan: %v", ErrScanRow, err)
	}
	return true, nil
}

// FindOverlapping возвращает открытые (pending/approved/active) бронирования оборудования,
// пересекающиеся с полуинтервалом window. excludeID = 0 означает "не исключать".
func (r *Repository) FindOverlapping(ctx context.Context, equipmentID int64, window domain.TimeRange, excludeID int64) ([]*domain.Reservation, error) {
	where := squirrel.And{
		squirrel.Eq{"equipment_id": equipmentID},
		squirrel.Eq{"status": openStatuses()},
		squirrel.Lt{"requested_start": window.End},
		squirrel.Gt{"requested_end": window.Start},
	}
	if excludeID != 0 {
		where = append(where, squirrel.NotEq{"id": excludeID})
	}

	return r.list(ctx, "FindOverlapping", psqlbuilder.Select(columns...).
		From(tableName).
		Where(where).
		OrderBy("requested_start ASC"))
}

// ListOpenStartingBetween возвращает открытые бронирования оборудования,
// начинающиеся в [from, to)
func (r *Repository) ListOpenStartingBetween(ctx context.Context, equipmentID int64, from, to time.Time) ([]*domain.Reservation, error) {
	return r.list(ctx, "ListOpenStartingBetween", psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"equipment_id": equipmentID}).
		Where(squirrel.Eq{"status": openStatuses()}).
		Where(squirrel.GtOrEq{"requested_start": from}).
		Where(squirrel.Lt{"requested_start": to}).
		OrderBy("requested_start ASC"))
}

// List возвращает бронирования по фильтру, новые первыми
func (r *Repository) List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		OrderBy("requested_start DESC", "id DESC")

	if filter.EquipmentID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"equipment_id": *filter.EquipmentID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"requested_start": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"requested_start": *filter.To})
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(filter.Offset))
	}

	return r.list(ctx, "List", selectBuilder)
}

// ListForReport возвращает бронирования с requested_start в [from, to)
// в порядке (equipment_id, requested_start, id), необходимом классификатору
func (r *Repository) ListForReport(ctx context.Context, from, to time.Time, equipmentID *int64) ([]*domain.Reservation, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.GtOrEq{"requested_start": from}).
		Where(squirrel.Lt{"requested_start": to}).
		OrderBy("equipment_id ASC", "requested_start ASC", "id ASC")

	if equipmentID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"equipment_id": *equipmentID})
	}

	return r.list(ctx, "ListForReport", selectBuilder)
}

func (r *Repository) list(ctx context.Context, method string, selectBuilder squirrel.SelectBuilder) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute select: %v", ErrExecQuery, method, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan reservation: %v", ErrScanRow, method, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %v", ErrExecQuery, method, err)
	}

	return reservations, nil
}

// CountOpenByEquipment считает открытые бронирования оборудования
func (r *Repository) CountOpenByEquipment(ctx context.Context, equipmentID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(tableName).
		Where(squirrel.Eq{"equipment_id": equipmentID}).
		Where(squirrel.Eq{"status": openStatuses()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountOpenByEquipment - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountOpenByEquipment - scan: %v", ErrScanRow, err)
	}
	return count, nil
}

// Update сохраняет изменяемые поля бронирования
func (r *Repository) Update(ctx context.Context, reservation *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var totalCost interface{}
	if reservation.TotalCost != nil {
		totalCost = *reservation.TotalCost
	}

	query, args, err := psqlbuilder.Update(tableName).
		Set("requested_start", reservation.RequestedStart).
		Set("requested_end", reservation.RequestedEnd).
		Set("status", string(reservation.Status)).
		Set("actual_start", nullTime(reservation.ActualStart)).
		Set("actual_end", nullTime(reservation.ActualEnd)).
		Set("consumable_quantity", reservation.ConsumableQuantity).
		Set("total_cost", totalCost).
		Set("modified_count", reservation.ModifiedCount).
		Set("out_of_hours", reservation.OutOfHours).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": reservation.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return ErrReservationNotFound
	}
	if err != nil {
		return mapWriteError("Update", err)
	}

	reservation.UpdatedAt = updatedAt.Time
	return nil
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func mapWriteError(method string, err error) error {
	switch {
	case IsConflict(err):
		return fmt.Errorf("%w: %s: %v", ErrSlotConflict, method, err)
	case isDuplicateCode(err):
		return fmt.Errorf("%w: %s: %v", ErrDuplicateCode, method, err)
	default:
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, method, err)
	}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
