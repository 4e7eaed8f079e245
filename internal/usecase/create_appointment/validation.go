package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/STO-AppointmentService/internal/domain"
	"github.com/m04kA/STO-AppointmentService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID != nil && *req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	// Время начала должно лежать на сетке слотов
	if err := validateSlotAligned(req.StartTime); err != nil {
		return err
	}

	// Для гостевой записи обязательны имя и телефон
	if req.UserID == nil {
		if req.GuestName == "" {
			return fmt.Errorf("%w: guestName is required for guest appointments", ErrInvalidInput)
		}
		if req.GuestPhone == "" {
			return fmt.Errorf("%w: guestPhone is required for guest appointments", ErrInvalidInput)
		}
	}

	if len(req.GuestName) > domain.MaxGuestNameLength {
		return fmt.Errorf("%w: guestName exceeds %d characters", ErrInvalidInput, domain.MaxGuestNameLength)
	}
	if len(req.GuestPhone) > domain.MaxGuestPhoneLength {
		return fmt.Errorf("%w: guestPhone exceeds %d characters", ErrInvalidInput, domain.MaxGuestPhoneLength)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateSlotAligned проверяет, что время начала кратно шагу сетки слотов
func validateSlotAligned(start types.TimeString) error {
	minutes, err := start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	if minutes%domain.SlotStepMinutes != 0 {
		return fmt.Errorf("%w: startTime must be aligned to %d-minute grid", ErrInvalidInput, domain.SlotStepMinutes)
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

	// На сегодняшний день нельзя записаться на уже прошедшее время
	if dateOnly.Equal(nowOnly) && start.IsBefore(types.NewTimeString(now)) {
		return fmt.Errorf("%w: startTime is in the past", ErrInvalidDate)
	}

	return nil
}
