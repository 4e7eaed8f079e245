package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/STO-AppointmentService/pkg/ptr"
	"github.com/m04kA/STO-AppointmentService/pkg/types"
)

func openDay(open, close string) DaySchedule {
	return DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr(types.TimeString(open)),
		CloseTime: ptr.Ptr(types.TimeString(close)),
	}
}

func TestDaySchedule_Interval(t *testing.T) {
	tests := []struct {
		name     string
		day      DaySchedule
		wantOpen types.TimeString
		wantOK   bool
	}{
		{name: "regular day", day: openDay("08:00", "18:00"), wantOpen: "08:00", wantOK: true},
		{name: "closed flag", day: DaySchedule{IsOpen: false}, wantOK: false},
		{name: "missing bounds", day: DaySchedule{IsOpen: true}, wantOK: false},
		{name: "zero sentinel", day: openDay("00:00", "00:00"), wantOK: false},
		{name: "inverted interval", day: openDay("18:00", "08:00"), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			open, _, ok := tt.day.Interval()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantOpen, open)
			}
		})
	}
}

func TestWeekSchedule_IntervalFor(t *testing.T) {
	ws := WeekSchedule{
		Monday: openDay("08:00", "18:00"),
		// остальные дни не заданы - закрыты
	}

	open, close, ok := ws.IntervalFor(time.Monday)
	require.True(t, ok)
	assert.Equal(t, types.TimeString("08:00"), open)
	assert.Equal(t, types.TimeString("18:00"), close)

	_, _, ok = ws.IntervalFor(time.Tuesday)
	assert.False(t, ok)
}

func TestWeekSchedule_ScanRoundTrip(t *testing.T) {
	ws := WeekSchedule{
		Monday:   openDay("08:00", "18:00"),
		Saturday: openDay("10:00", "16:00"),
	}

	raw, err := ws.Value()
	require.NoError(t, err)

	var scanned WeekSchedule
	require.NoError(t, scanned.Scan(raw))
	assert.Equal(t, ws, scanned)
}

func TestBox_ContainsInterval(t *testing.T) {
	box := &Box{
		IsActive: true,
		WorkingHours: WeekSchedule{
			Monday: openDay("08:00", "18:00"),
		},
	}
	monday := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC) // понедельник

	assert.True(t, box.ContainsInterval(monday, "08:00", 60))
	assert.True(t, box.ContainsInterval(monday, "17:00", 60))
	assert.False(t, box.ContainsInterval(monday, "17:30", 60), "slot end past closing")
	assert.False(t, box.ContainsInterval(monday, "07:30", 60), "slot start before opening")
	assert.False(t, box.ContainsInterval(monday.AddDate(0, 0, 1), "10:00", 60), "closed day")
}
