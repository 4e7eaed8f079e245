package box

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/STO-AppointmentService/internal/domain"
	"github.com/m04kA/STO-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/STO-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с боксами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория боксов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListActive получает все активные боксы в порядке возрастания ID.
// Порядок фиксирован: подбор свободного бокса детерминированно выбирает
// бокс с наименьшим ID.
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Box, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"description",
		"is_active",
		"working_hours",
		"created_at",
		"updated_at",
	).
		From("boxes").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	boxes := make([]*domain.Box, 0)
	for rows.Next() {
		box, err := scanBox(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		boxes = append(boxes, box)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return boxes, nil
}

// GetByID получает бокс по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Box, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"description",
		"is_active",
		"working_hours",
		"created_at",
		"updated_at",
	).
		From("boxes").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	box, err := scanBox(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBoxNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan box: %v", ErrScanRow, err)
	}

	return box, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBox(row rowScanner) (*domain.Box, error) {
	var box domain.Box
	var description sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&box.ID,
		&box.Name,
		&description,
		&box.IsActive,
		&box.WorkingHours,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	box.Description = description.String
	box.CreatedAt = createdAt.Time
	box.UpdatedAt = updatedAt.Time

	return &box, nil
}
