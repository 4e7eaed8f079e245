package edit_appointment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/STO-AppointmentService/pkg/types"
)

// Request модель запроса на редактирование записи.
// Необновляемые поля передаются как nil.
type Request struct {
	AppointmentID int64
	UserID        *int64 // ID пользователя в AuthService, nil для гостя

	ServiceID *int64            // Новая услуга (опционально)
	Date      *time.Time        // Новая дата (опционально)
	StartTime *types.TimeString // Новое время начала (опционально)
	Notes     *string           // Новые заметки (опционально)
}

// Response модель ответа с обновленной записью
type Response struct {
	ID              int64
	CustomerID      *int64
	GuestName       string
	GuestPhone      string
	GuestEmail      string
	ServiceID       int64
	BoxID           int64
	AppointmentDate time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string
	TotalPrice      decimal.Decimal
	Notes           *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
