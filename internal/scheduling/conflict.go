package scheduling

import (
	"github.com/m04kA/STO-AppointmentService/internal/domain"
	"github.com/m04kA/STO-AppointmentService/pkg/types"
)

// HasConflict проверяет, пересекается ли интервал [start, start+durationMinutes)
// хотя бы с одной активной записью из списка. Записи с ID равным excludeID
// пропускаются (используется при редактировании той же записи).
//
// Интервалы полуоткрытые: запись, заканчивающаяся ровно в момент начала слота
// (или начинающаяся ровно в момент его конца), конфликтом НЕ считается.
// Возвращает true на первом найденном пересечении.
func HasConflict(start types.TimeString, durationMinutes int, appointments []*domain.Appointment, excludeID *int64) bool {
	slotEnd, err := start.AddMinutes(durationMinutes)
	if err != nil {
		// Некорректный интервал не может быть забронирован, считаем конфликтом
		return true
	}

	for _, appointment := range appointments {
		if excludeID != nil && appointment.ID == *excludeID {
			continue
		}
		if !appointment.IsActive() {
			continue
		}

		duration := appointment.DurationMinutes
		if duration <= 0 {
			// Услуга записи удалена или без длительности - используем дефолт
			duration = domain.DefaultServiceDurationMinutes
		}

		appointmentStart := appointment.StartTime
		appointmentEnd, err := appointmentStart.AddMinutes(duration)
		if err != nil {
			continue
		}

		// Пересечение только при строгих неравенствах: границы не конфликтуют
		if appointmentStart.IsBefore(slotEnd) && appointmentEnd.IsAfter(start) {
			return true
		}
	}

	return false
}
