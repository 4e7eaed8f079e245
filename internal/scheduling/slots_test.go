package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/STO-AppointmentService/pkg/types"
)

func TestCandidateStarts(t *testing.T) {
	t.Run("full working day with hour-long service", func(t *testing.T) {
		starts, err := CandidateStarts("08:00", "18:00", 60)
		require.NoError(t, err)

		// 08:00 .. 17:00 с шагом 30 минут; 17:30 не входит, т.к. 17:30+60 > 18:00
		require.Len(t, starts, 19)
		assert.Equal(t, types.TimeString("08:00"), starts[0])
		assert.Equal(t, types.TimeString("17:00"), starts[len(starts)-1])
	})

	t.Run("service longer than the working interval", func(t *testing.T) {
		starts, err := CandidateStarts("08:00", "09:00", 90)
		require.NoError(t, err)
		assert.Empty(t, starts)
	})

	t.Run("service exactly filling the interval", func(t *testing.T) {
		starts, err := CandidateStarts("08:00", "09:00", 60)
		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"08:00"}, starts)
	})

	t.Run("ascending and deterministic", func(t *testing.T) {
		first, err := CandidateStarts("09:00", "12:30", 45)
		require.NoError(t, err)
		second, err := CandidateStarts("09:00", "12:30", 45)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		for i := 1; i < len(first); i++ {
			assert.True(t, first[i-1].IsBefore(first[i]))
		}
	})

	t.Run("invalid bounds", func(t *testing.T) {
		_, err := CandidateStarts("8:00", "18:00", 60)
		assert.Error(t, err)
	})
}
