package history

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/STO-AppointmentService/internal/domain"
	"github.com/m04kA/STO-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/STO-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с историей обслуживания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория истории
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись истории обслуживания при завершении записи
func (r *Repository) Create(ctx context.Context, rec *domain.ServiceHistory) (*domain.ServiceHistory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("service_history").
		Columns(
			"appointment_id",
			"completed_at",
			"mechanic_notes",
			"actual_duration",
			"final_price",
		).
		Values(
			rec.AppointmentID,
			rec.CompletedAt,
			rec.MechanicNotes,
			rec.ActualDuration,
			rec.FinalPrice,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rec.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return rec, nil
}

// GetByCustomerID получает историю обслуживания клиента,
// от новых записей к старым
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64) ([]*domain.ServiceHistory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"h.id",
		"h.appointment_id",
		"h.completed_at",
		"h.mechanic_notes",
		"h.actual_duration",
		"h.final_price",
	).
		From("service_history h").
		Join("appointments a ON a.id = h.appointment_id").
		Where(squirrel.Eq{"a.customer_id": customerID}).
		OrderBy("h.completed_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]*domain.ServiceHistory, 0)
	for rows.Next() {
		var rec domain.ServiceHistory
		var notes sql.NullString

		err := rows.Scan(
			&rec.ID,
			&rec.AppointmentID,
			&rec.CompletedAt,
			&notes,
			&rec.ActualDuration,
			&rec.FinalPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByCustomerID - scan row: %v", ErrScanRow, err)
		}

		rec.MechanicNotes = notes.String
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}
