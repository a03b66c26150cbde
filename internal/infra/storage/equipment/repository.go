package equipment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	"github.com/m04kA/SMC-LabBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LabBookingService/pkg/psqlbuilder"
)

const tableName = "equipment"

var columns = []string{
	"id",
	"name",
	"description",
	"availability_config",
	"allow_out_of_hours",
	"auto_approve",
	"price_type",
	"price",
	"consumable_fee",
	"whitelist_enabled",
	"whitelist",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с оборудованием
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория оборудования
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEquipment(row rowScanner) (*domain.Equipment, error) {
	var (
		e                    domain.Equipment
		priceType            string
		config               []byte
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Description,
		&config,
		&e.AllowOutOfHours,
		&e.AutoApprove,
		&priceType,
		&e.Price,
		&e.ConsumableFee,
		&e.WhitelistEnabled,
		&e.Whitelist,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.AvailabilityConfig = config
	e.PriceType = domain.PriceType(priceType)
	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time
	return &e, nil
}

// Create создает оборудование
func (r *Repository) Create(ctx context.Context, equipment *domain.Equipment) (*domain.Equipment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"name",
			"description",
			"availability_config",
			"allow_out_of_hours",
			"auto_approve",
			"price_type",
			"price",
			"consumable_fee",
			"whitelist_enabled",
			"whitelist",
		).
		Values(
			equipment.Name,
			equipment.Description,
			string(equipment.AvailabilityConfig),
			equipment.AllowOutOfHours,
			equipment.AutoApprove,
			string(equipment.PriceType),
			equipment.Price,
			equipment.ConsumableFee,
			equipment.WhitelistEnabled,
			equipment.Whitelist,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&equipment.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	equipment.CreatedAt = createdAt.Time
	equipment.UpdatedAt = updatedAt.Time
	return equipment, nil
}

// GetByID получает оборудование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE): так сериализуются
// конкурентные бронирования одного оборудования.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	equipment, err := scanEquipment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrEquipmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan equipment: %v", ErrScanRow, err)
	}
	return equipment, nil
}

// List возвращает все оборудование, упорядоченное по ID
func (r *Repository) List(ctx context.Context) ([]*domain.Equipment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Equipment, 0)
	for rows.Next() {
		equipment, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan equipment: %v", ErrScanRow, err)
		}
		result = append(result, equipment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %v", ErrExecQuery, err)
	}
	return result, nil
}

// Update сохраняет все изменяемые поля оборудования
func (r *Repository) Update(ctx context.Context, equipment *domain.Equipment) error {
	return r.update(ctx, "Update", equipment.ID, map[string]interface{}{
		"name":                equipment.Name,
		"description":         equipment.Description,
		"availability_config": string(equipment.AvailabilityConfig),
		"allow_out_of_hours":  equipment.AllowOutOfHours,
		"auto_approve":        equipment.AutoApprove,
		"price_type":          string(equipment.PriceType),
		"price":               equipment.Price,
		"consumable_fee":      equipment.ConsumableFee,
		"whitelist_enabled":   equipment.WhitelistEnabled,
		"whitelist":           equipment.Whitelist,
	})
}

// UpdateWhitelist сохраняет только список допуска
func (r *Repository) UpdateWhitelist(ctx context.Context, id int64, whitelist string) error {
	return r.update(ctx, "UpdateWhitelist", id, map[string]interface{}{
		"whitelist": whitelist,
	})
}

func (r *Repository) update(ctx context.Context, method string, id int64, values map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		SetMap(values).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, method, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %v", ErrExecQuery, method, err)
	}
	if affected == 0 {
		return ErrEquipmentNotFound
	}
	return nil
}

// Delete удаляет оборудование. Бронирования ссылаются на него слабо и не удаляются.
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
		return ErrEquipmentNotFound
	}
	return nil
}
