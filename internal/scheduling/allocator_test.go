package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/STO-AppointmentService/internal/domain"
	"github.com/m04kA/STO-AppointmentService/pkg/ptr"
	"github.com/m04kA/STO-AppointmentService/pkg/types"
)

// fakeBoxProvider возвращает заранее заданный список боксов
type fakeBoxProvider struct {
	boxes []*domain.Box
}

func (f *fakeBoxProvider) ListActive(_ context.Context) ([]*domain.Box, error) {
	return f.boxes, nil
}

// fakeAppointmentProvider хранит записи по (boxID, дата)
type fakeAppointmentProvider struct {
	byBox map[int64][]*domain.Appointment
	calls int
}

func (f *fakeAppointmentProvider) GetActiveByBoxAndDate(_ context.Context, boxID int64, _ time.Time) ([]*domain.Appointment, error) {
	f.calls++
	active := make([]*domain.Appointment, 0)
	for _, a := range f.byBox[boxID] {
		if a.IsActive() {
			active = append(active, a)
		}
	}
	return active, nil
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func weekdaySchedule(open, close string) domain.WeekSchedule {
	day := domain.DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr(types.TimeString(open)),
		CloseTime: ptr.Ptr(types.TimeString(close)),
	}
	return domain.WeekSchedule{
		Monday:    day,
		Tuesday:   day,
		Wednesday: day,
		Thursday:  day,
		Friday:    day,
	}
}

func testBox(id int64, schedule domain.WeekSchedule) *domain.Box {
	return &domain.Box{ID: id, Name: "Box", IsActive: true, WorkingHours: schedule}
}

func testService(duration int) *domain.Service {
	return &domain.Service{
		ID:              1,
		Name:            "Oil change",
		Price:           decimal.RequireFromString("1000.00"),
		DurationMinutes: duration,
		IsActive:        true,
	}
}

var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

func newTestAllocator(boxes []*domain.Box, appts map[int64][]*domain.Appointment, now time.Time) (*Allocator, *fakeAppointmentProvider) {
	provider := &fakeAppointmentProvider{byBox: appts}
	alloc := NewAllocator(&fakeBoxProvider{boxes: boxes}, provider, nopLogger{}).
		WithTimeProvider(&fixedTime{now: now})
	return alloc, provider
}

func TestAllocator_FindFreeBox_PicksLowestID(t *testing.T) {
	boxes := []*domain.Box{
		testBox(1, weekdaySchedule("08:00", "18:00")),
		testBox(2, weekdaySchedule("08:00", "18:00")),
	}
	alloc, _ := newTestAllocator(boxes, map[int64][]*domain.Appointment{}, monday)

	box, err := alloc.FindFreeBox(context.Background(), monday, "10:00", testService(60), nil)
	require.NoError(t, err)
	require.NotNil(t, box)
	assert.Equal(t, int64(1), box.ID)
}

func TestAllocator_FindFreeBox_SkipsConflictingBox(t *testing.T) {
	boxes := []*domain.Box{
		testBox(1, weekdaySchedule("08:00", "18:00")),
		testBox(2, weekdaySchedule("08:00", "18:00")),
	}
	appts := map[int64][]*domain.Appointment{
		1: {appointment(100, "10:00", 60, domain.StatusConfirmed)},
	}
	alloc, _ := newTestAllocator(boxes, appts, monday)

	box, err := alloc.FindFreeBox(context.Background(), monday, "10:30", testService(60), nil)
	require.NoError(t, err)
	require.NotNil(t, box)
	assert.Equal(t, int64(2), box.ID)
}

func TestAllocator_FindFreeBox_NoCapacity(t *testing.T) {
	boxes := []*domain.Box{testBox(1, weekdaySchedule("08:00", "18:00"))}
	appts := map[int64][]*domain.Appointment{
		1: {appointment(100, "10:00", 60, domain.StatusPending)},
	}
	alloc, _ := newTestAllocator(boxes, appts, monday)

	box, err := alloc.FindFreeBox(context.Background(), monday, "10:30", testService(60), nil)
	require.NoError(t, err)
	assert.Nil(t, box, "отсутствие свободного бокса не является ошибкой")
}

func TestAllocator_FindFreeBox_RespectsWorkingHours(t *testing.T) {
	boxes := []*domain.Box{testBox(1, weekdaySchedule("08:00", "18:00"))}
	alloc, _ := newTestAllocator(boxes, map[int64][]*domain.Appointment{}, monday)

	// 17:30 + 60 минут выходит за закрытие
	box, err := alloc.FindFreeBox(context.Background(), monday, "17:30", testService(60), nil)
	require.NoError(t, err)
	assert.Nil(t, box)

	// Воскресенье - все боксы закрыты
	sunday := monday.AddDate(0, 0, 6)
	box, err = alloc.FindFreeBox(context.Background(), sunday, "10:00", testService(60), nil)
	require.NoError(t, err)
	assert.Nil(t, box)
}

func TestAllocator_FindFreeBox_ExcludeOwnAppointment(t *testing.T) {
	boxes := []*domain.Box{testBox(1, weekdaySchedule("08:00", "18:00"))}
	appts := map[int64][]*domain.Appointment{
		1: {appointment(42, "10:00", 60, domain.StatusPending)},
	}
	alloc, _ := newTestAllocator(boxes, appts, monday)

	box, err := alloc.FindFreeBox(context.Background(), monday, "10:00", testService(60), ptr.Ptr(int64(42)))
	require.NoError(t, err)
	require.NotNil(t, box)
	assert.Equal(t, int64(1), box.ID)
}

func TestAllocator_FindFreeBox_Idempotent(t *testing.T) {
	boxes := []*domain.Box{
		testBox(1, weekdaySchedule("08:00", "18:00")),
		testBox(2, weekdaySchedule("08:00", "18:00")),
	}
	alloc, _ := newTestAllocator(boxes, map[int64][]*domain.Appointment{}, monday)

	first, err := alloc.FindFreeBox(context.Background(), monday, "10:00", testService(60), nil)
	require.NoError(t, err)
	second, err := alloc.FindFreeBox(context.Background(), monday, "10:00", testService(60), nil)
	require.NoError(t, err)

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)
}

func TestAllocator_AvailableTimes(t *testing.T) {
	boxes := []*domain.Box{
		testBox(1, weekdaySchedule("08:00", "10:00")),
		testBox(2, weekdaySchedule("09:00", "11:00")),
	}
	appts := map[int64][]*domain.Appointment{
		1: {appointment(100, "08:00", 60, domain.StatusConfirmed)},
	}
	alloc, _ := newTestAllocator(boxes, appts, monday)

	times, err := alloc.AvailableTimes(context.Background(), monday, testService(60), nil)
	require.NoError(t, err)

	// Бокс 1: 09:00 свободно (08:00 занято); бокс 2: 09:00, 09:30, 10:00.
	// 09:00 встречается в обоих боксах, но в результате один раз.
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00"}, times)
}

func TestAllocator_AvailableTimes_ClosedDay(t *testing.T) {
	boxes := []*domain.Box{testBox(1, weekdaySchedule("08:00", "18:00"))}
	alloc, _ := newTestAllocator(boxes, map[int64][]*domain.Appointment{}, monday)

	sunday := monday.AddDate(0, 0, 6)
	times, err := alloc.AvailableTimes(context.Background(), sunday, testService(60), nil)
	require.NoError(t, err)
	assert.Empty(t, times)
}

func TestAllocator_AvailableDates(t *testing.T) {
	// Бокс работает только по будням
	boxes := []*domain.Box{testBox(1, weekdaySchedule("08:00", "18:00"))}
	alloc, _ := newTestAllocator(boxes, map[int64][]*domain.Appointment{}, monday)

	dates, err := alloc.AvailableDates(context.Background(), testService(60), 7, nil)
	require.NoError(t, err)

	// Понедельник-пятница доступны, суббота и воскресенье - нет
	require.Len(t, dates, 5)
	assert.Equal(t, monday, dates[0])
	assert.Equal(t, monday.AddDate(0, 0, 4), dates[4])
	for i := 1; i < len(dates); i++ {
		assert.True(t, dates[i-1].Before(dates[i]))
	}
}

func TestAllocator_AvailableDates_FullyBookedDayExcluded(t *testing.T) {
	// Один бокс, короткий рабочий день: единственный слот занят
	boxes := []*domain.Box{testBox(1, domain.WeekSchedule{
		Monday: domain.DaySchedule{
			IsOpen:    true,
			OpenTime:  ptr.Ptr(types.TimeString("08:00")),
			CloseTime: ptr.Ptr(types.TimeString("09:00")),
		},
	})}
	appts := map[int64][]*domain.Appointment{
		1: {appointment(100, "08:00", 60, domain.StatusPending)},
	}
	alloc, _ := newTestAllocator(boxes, appts, monday)

	dates, err := alloc.AvailableDates(context.Background(), testService(60), 7, nil)
	require.NoError(t, err)
	assert.Empty(t, dates)
}
