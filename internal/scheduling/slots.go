package scheduling

import (
	"github.com/m04kA/STO-AppointmentService/internal/domain"
	"github.com/m04kA/STO-AppointmentService/pkg/types"
)

// CandidateStarts генерирует кандидатов времени начала в интервале [open, close)
// с фиксированным шагом сетки domain.SlotStepMinutes.
// В результат попадают только слоты, целиком умещающиеся до закрытия:
// start + durationMinutes <= close. Последовательность конечна и возрастает.
// Если услуга длиннее всего рабочего интервала, результат пуст.
func CandidateStarts(open, close types.TimeString, durationMinutes int) ([]types.TimeString, error) {
	openMinutes, err := open.Minutes()
	if err != nil {
		return nil, err
	}

	closeMinutes, err := close.Minutes()
	if err != nil {
		return nil, err
	}

	starts := make([]types.TimeString, 0)
	for current := openMinutes; current+durationMinutes <= closeMinutes; current += domain.SlotStepMinutes {
		slot, err := types.NewTimeStringFromMinutes(current)
		if err != nil {
			return nil, err
		}
		starts = append(starts, slot)
	}

	return starts, nil
}
