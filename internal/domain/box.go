package domain

import (
	"time"

	"github.com/m04kA/STO-AppointmentService/pkg/types"
)

// Box физический рабочий пост с недельным календарем доступности.
// Боксы управляются административным сервисом, для планировщика
// они доступны только на чтение.
type Box struct {
	ID           int64
	Name         string
	Description  string
	IsActive     bool
	WorkingHours WeekSchedule
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IntervalFor возвращает интервал работы бокса для дня недели указанной даты
func (b *Box) IntervalFor(date time.Time) (open, close types.TimeString, ok bool) {
	return b.WorkingHours.IntervalFor(date.Weekday())
}

// ContainsInterval проверяет, что [start, start+duration) целиком лежит
// в интервале работы бокса на указанную дату
func (b *Box) ContainsInterval(date time.Time, start types.TimeString, durationMinutes int) bool {
	open, close, ok := b.IntervalFor(date)
	if !ok {
		return false
	}
	if start.IsBefore(open) {
		return false
	}
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return false
	}
	return !end.IsAfter(close)
}
