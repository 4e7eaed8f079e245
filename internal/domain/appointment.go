package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/STO-AppointmentService/pkg/types"
)

// AppointmentStatus статус записи на обслуживание
type AppointmentStatus string

const (
	StatusPending          AppointmentStatus = "pending"
	StatusConfirmed        AppointmentStatus = "confirmed"
	StatusInProgress       AppointmentStatus = "in_progress"
	StatusCompleted        AppointmentStatus = "completed"
	StatusCancelled        AppointmentStatus = "cancelled"
	StatusCancelledByAdmin AppointmentStatus = "cancelled_by_admin"
)

// ParseAppointmentStatus валидирует сырую строку статуса
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	switch AppointmentStatus(s) {
	case StatusPending, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusCancelledByAdmin:
		return AppointmentStatus(s), nil
	default:
		return "", fmt.Errorf("unknown appointment status: %q", s)
	}
}

// Appointment запись на обслуживание в боксе
type Appointment struct {
	ID         int64
	CustomerID *int64 // nil для гостевых записей

	// Контактные данные гостя, заполняются только когда CustomerID == nil
	GuestName  string
	GuestPhone string
	GuestEmail string

	ServiceID int64
	BoxID     *int64 // nil только до подбора бокса

	AppointmentDate time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	Notes      *string
	TotalPrice decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsGuest возвращает true, если запись создана без учетной записи клиента
func (a *Appointment) IsGuest() bool {
	return a.CustomerID == nil
}

// IsActive возвращает true, если запись занимает слот бокса
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending ||
		a.Status == StatusConfirmed ||
		a.Status == StatusInProgress
}

// CanBeEdited возвращает true, если запись еще может редактироваться владельцем
func (a *Appointment) CanBeEdited() bool {
	return a.Status == StatusPending
}

// CanBeConfirmed возвращает true, если запись может быть подтверждена
func (a *Appointment) CanBeConfirmed() bool {
	return a.Status == StatusPending
}

// CanBeCompleted возвращает true, если запись может быть завершена
func (a *Appointment) CanBeCompleted() bool {
	return a.Status == StatusConfirmed || a.Status == StatusInProgress
}

// CanBeCancelled возвращает true, если запись может быть отменена
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// StartDateTime объединяет дату и время начала записи в указанной таймзоне
func (a *Appointment) StartDateTime(loc *time.Location) (time.Time, error) {
	minutes, err := a.StartTime.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	d := a.AppointmentDate
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc).
		Add(time.Duration(minutes) * time.Minute), nil
}

// IsEditableAt проверяет, что срок редактирования еще не наступил.
// Ровно за EditCutoff до начала запись все еще редактируема; проверка
// каждый раз пересчитывается от переданного "сейчас".
func (a *Appointment) IsEditableAt(now time.Time) (bool, error) {
	start, err := a.StartDateTime(now.Location())
	if err != nil {
		return false, err
	}
	return !now.After(start.Add(-EditCutoff)), nil
}
