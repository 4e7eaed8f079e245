package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/STO-AppointmentService/pkg/types"
)

func TestAppointment_StatusPredicates(t *testing.T) {
	tests := []struct {
		status       AppointmentStatus
		active       bool
		editable     bool
		confirmable  bool
		completable  bool
		cancellable  bool
	}{
		{StatusPending, true, true, true, false, true},
		{StatusConfirmed, true, false, false, true, true},
		{StatusInProgress, true, false, false, true, false},
		{StatusCompleted, false, false, false, false, false},
		{StatusCancelled, false, false, false, false, false},
		{StatusCancelledByAdmin, false, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			a := &Appointment{Status: tt.status}
			assert.Equal(t, tt.active, a.IsActive())
			assert.Equal(t, tt.editable, a.CanBeEdited())
			assert.Equal(t, tt.confirmable, a.CanBeConfirmed())
			assert.Equal(t, tt.completable, a.CanBeCompleted())
			assert.Equal(t, tt.cancellable, a.CanBeCancelled())
		})
	}
}

func TestAppointment_IsEditableAt(t *testing.T) {
	now := time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC)

	appointmentIn := func(minutes int) *Appointment {
		start := now.Add(time.Duration(minutes) * time.Minute)
		return &Appointment{
			AppointmentDate: time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
			StartTime:       types.NewTimeString(start),
		}
	}

	tests := []struct {
		name       string
		minutesOut int
		want       bool
	}{
		{name: "59 minutes before start", minutesOut: 59, want: false},
		{name: "119 minutes before start", minutesOut: 119, want: false},
		{name: "exactly at the cutoff", minutesOut: 120, want: true},
		{name: "121 minutes before start", minutesOut: 121, want: true},
		{name: "next day", minutesOut: 24 * 60, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := appointmentIn(tt.minutesOut).IsEditableAt(now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAppointmentStatus(t *testing.T) {
	status, err := ParseAppointmentStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, status)

	_, err = ParseAppointmentStatus("unknown")
	assert.Error(t, err)
}

func TestAppointment_IsGuest(t *testing.T) {
	id := int64(7)
	assert.False(t, (&Appointment{CustomerID: &id}).IsGuest())
	assert.True(t, (&Appointment{}).IsGuest())
}
