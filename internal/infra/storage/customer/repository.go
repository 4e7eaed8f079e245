package customer

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/STO-AppointmentService/internal/domain"
	"github.com/m04kA/STO-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/STO-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с профилями клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает клиента по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"user_id",
		"is_blocked",
		"loyalty_points",
		"created_at",
		"updated_at",
	).
		From("customers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	cust, err := r.scanCustomer(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan customer: %v", ErrScanRow, err)
	}

	return cust, nil
}

// GetByUserID получает клиента по ID пользователя во внешнем сервисе идентификации
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"user_id",
		"is_blocked",
		"loyalty_points",
		"created_at",
		"updated_at",
	).
		From("customers").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	cust, err := r.scanCustomer(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - scan customer: %v", ErrScanRow, err)
	}

	return cust, nil
}

// AddLoyaltyPoints начисляет баллы лояльности клиенту
func (r *Repository) AddLoyaltyPoints(ctx context.Context, id int64, points int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("customers").
		Set("loyalty_points", squirrel.Expr("loyalty_points + ?", points)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AddLoyaltyPoints - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AddLoyaltyPoints - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AddLoyaltyPoints - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanCustomer(row rowScanner) (*domain.Customer, error) {
	var cust domain.Customer
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&cust.ID,
		&cust.UserID,
		&cust.IsBlocked,
		&cust.LoyaltyPoints,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	cust.CreatedAt = createdAt.Time
	cust.UpdatedAt = updatedAt.Time

	return &cust, nil
}
