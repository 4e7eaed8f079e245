package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/STO-AppointmentService/internal/domain"
	serviceRepo "github.com/m04kA/STO-AppointmentService/internal/infra/storage/service"
	"github.com/m04kA/STO-AppointmentService/pkg/ptr"
	"github.com/m04kA/STO-AppointmentService/pkg/types"
)

type fakeServiceRepo struct {
	services map[int64]*domain.Service
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return svc, nil
}

type fakeScheduler struct {
	dates       []time.Time
	times       []types.TimeString
	horizonDays int
	excludeID   *int64
}

func (f *fakeScheduler) AvailableDates(_ context.Context, _ *domain.Service, horizonDays int, excludeAppointmentID *int64) ([]time.Time, error) {
	f.horizonDays = horizonDays
	f.excludeID = excludeAppointmentID
	return f.dates, nil
}

func (f *fakeScheduler) AvailableTimes(_ context.Context, _ time.Time, _ *domain.Service, excludeAppointmentID *int64) ([]types.TimeString, error) {
	f.excludeID = excludeAppointmentID
	return f.times, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(scheduler *fakeScheduler) *UseCase {
	return NewUseCase(
		&fakeServiceRepo{services: map[int64]*domain.Service{
			1: {ID: 1, Price: decimal.RequireFromString("1000.00"), DurationMinutes: 60, IsActive: true},
		}},
		scheduler,
		nopLogger{},
	)
}

func TestUseCase_Dates(t *testing.T) {
	scheduler := &fakeScheduler{dates: []time.Time{
		time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
	}}
	uc := newTestUseCase(scheduler)

	resp, err := uc.Dates(context.Background(), &DatesRequest{ServiceID: 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-10-15", "2025-10-16"}, resp.Dates)
	assert.Equal(t, domain.AvailabilityHorizonDays, scheduler.horizonDays)
	assert.Nil(t, scheduler.excludeID)
}

func TestUseCase_Dates_ExcludeAppointment(t *testing.T) {
	scheduler := &fakeScheduler{}
	uc := newTestUseCase(scheduler)

	_, err := uc.Dates(context.Background(), &DatesRequest{
		ServiceID:            1,
		ExcludeAppointmentID: ptr.Ptr(int64(7)),
	})
	require.NoError(t, err)

	require.NotNil(t, scheduler.excludeID)
	assert.Equal(t, int64(7), *scheduler.excludeID)
}

func TestUseCase_Dates_UnknownService(t *testing.T) {
	uc := newTestUseCase(&fakeScheduler{})

	_, err := uc.Dates(context.Background(), &DatesRequest{ServiceID: 404})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestUseCase_Times(t *testing.T) {
	scheduler := &fakeScheduler{times: []types.TimeString{"10:00", "10:30", "15:00"}}
	uc := newTestUseCase(scheduler)

	resp, err := uc.Times(context.Background(), &TimesRequest{
		ServiceID: 1,
		Date:      time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-10-15", resp.Date)
	assert.Equal(t, []string{"10:00", "10:30", "15:00"}, resp.Times)
}

func TestUseCase_Times_NoSlots(t *testing.T) {
	uc := newTestUseCase(&fakeScheduler{})

	resp, err := uc.Times(context.Background(), &TimesRequest{
		ServiceID: 1,
		Date:      time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Times)
}

func TestUseCase_Times_MissingDate(t *testing.T) {
	uc := newTestUseCase(&fakeScheduler{})

	_, err := uc.Times(context.Background(), &TimesRequest{ServiceID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
