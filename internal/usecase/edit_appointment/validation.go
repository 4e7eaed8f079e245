package edit_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/STO-AppointmentService/internal/domain"
	"github.com/m04kA/STO-AppointmentService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if req.UserID != nil && *req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StartTime != nil {
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
		}

		minutes, err := req.StartTime.Minutes()
		if err != nil {
			return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
		}
		if minutes%domain.SlotStepMinutes != 0 {
			return fmt.Errorf("%w: startTime must be aligned to %d-minute grid", ErrInvalidInput, domain.SlotStepMinutes)
		}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	// Запрос без изменений не имеет смысла
	if req.ServiceID == nil && req.Date == nil && req.StartTime == nil && req.Notes == nil {
		return fmt.Errorf("%w: at least one field must be provided", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата и время записи не в прошлом
func validateDate(date time.Time, start types.TimeString, now time.Time) error {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}

	if dateOnly.Equal(nowOnly) && start.IsBefore(types.NewTimeString(now)) {
		return fmt.Errorf("%w: startTime is in the past", ErrInvalidDate)
	}

	return nil
}
