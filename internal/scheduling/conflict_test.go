package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/STO-AppointmentService/internal/domain"
	"github.com/m04kA/STO-AppointmentService/pkg/ptr"
	"github.com/m04kA/STO-AppointmentService/pkg/types"
)

func appointment(id int64, start types.TimeString, duration int, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		StartTime:       start,
		DurationMinutes: duration,
		Status:          status,
	}
}

func TestHasConflict_Symmetry(t *testing.T) {
	// A [10:00, 11:00) и B [10:30, 11:30) конфликтуют независимо от того,
	// какая из записей уже существует
	existingA := []*domain.Appointment{appointment(1, "10:00", 60, domain.StatusPending)}
	assert.True(t, HasConflict("10:30", 60, existingA, nil))

	existingB := []*domain.Appointment{appointment(2, "10:30", 60, domain.StatusPending)}
	assert.True(t, HasConflict("10:00", 60, existingB, nil))
}

func TestHasConflict_AdjacentIntervals(t *testing.T) {
	existing := []*domain.Appointment{appointment(1, "10:00", 60, domain.StatusConfirmed)}

	// Полуоткрытые интервалы: граничащие записи не конфликтуют
	assert.False(t, HasConflict("11:00", 60, existing, nil))
	assert.False(t, HasConflict("09:00", 60, existing, nil))
}

func TestHasConflict_InactiveIgnored(t *testing.T) {
	existing := []*domain.Appointment{
		appointment(1, "10:00", 60, domain.StatusCancelled),
		appointment(2, "10:00", 60, domain.StatusCancelledByAdmin),
		appointment(3, "10:00", 60, domain.StatusCompleted),
	}

	assert.False(t, HasConflict("10:00", 60, existing, nil))
}

func TestHasConflict_ExcludesOwnAppointment(t *testing.T) {
	existing := []*domain.Appointment{appointment(5, "10:00", 60, domain.StatusPending)}

	assert.True(t, HasConflict("10:00", 60, existing, nil))
	assert.False(t, HasConflict("10:00", 60, existing, ptr.Ptr(int64(5))),
		"редактируемая запись не конфликтует сама с собой")
	assert.True(t, HasConflict("10:00", 60, existing, ptr.Ptr(int64(6))))
}

func TestHasConflict_MissingDurationFallsBack(t *testing.T) {
	// Запись без длительности (услуга удалена) занимает дефолтные 60 минут
	existing := []*domain.Appointment{appointment(1, "10:00", 0, domain.StatusPending)}

	assert.True(t, HasConflict("10:30", 30, existing, nil))
	assert.False(t, HasConflict("11:00", 30, existing, nil))
}

func TestHasConflict_ShortCircuits(t *testing.T) {
	existing := []*domain.Appointment{
		appointment(1, "10:00", 60, domain.StatusPending),
		appointment(2, "10:00", 60, domain.StatusPending),
	}

	assert.True(t, HasConflict("10:00", 60, existing, nil))
}
