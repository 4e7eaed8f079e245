package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/STO-AppointmentService/internal/domain"
	"github.com/m04kA/STO-AppointmentService/internal/infra/queue"
	appointmentRepo "github.com/m04kA/STO-AppointmentService/internal/infra/storage/appointment"
	customerRepo "github.com/m04kA/STO-AppointmentService/internal/infra/storage/customer"
	"github.com/m04kA/STO-AppointmentService/internal/integrations/authservice"
	"github.com/m04kA/STO-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/STO-AppointmentService/pkg/ptr"
)

type fakeAppointmentRepository struct {
	appointments map[int64]*domain.Appointment
	statuses     map[int64]domain.AppointmentStatus
}

func newFakeAppointmentRepository(apts ...*domain.Appointment) *fakeAppointmentRepository {
	f := &fakeAppointmentRepository{
		appointments: map[int64]*domain.Appointment{},
		statuses:     map[int64]domain.AppointmentStatus{},
	}
	for _, a := range apts {
		f.appointments[a.ID] = a
	}
	return f
}

func (f *fakeAppointmentRepository) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	apt, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	cp := *apt
	return &cp, nil
}

func (f *fakeAppointmentRepository) GetByCustomerID(_ context.Context, customerID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, a := range f.appointments {
		if a.CustomerID == nil || *a.CustomerID != customerID {
			continue
		}
		if status != nil && a.Status != *status {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (f *fakeAppointmentRepository) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	f.statuses[id] = status
	f.appointments[id].Status = status
	return nil
}

type fakeHistoryRepository struct {
	records []*domain.ServiceHistory
}

func (f *fakeHistoryRepository) Create(_ context.Context, rec *domain.ServiceHistory) (*domain.ServiceHistory, error) {
	rec.ID = int64(len(f.records) + 1)
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeHistoryRepository) GetByCustomerID(_ context.Context, _ int64) ([]*domain.ServiceHistory, error) {
	return f.records, nil
}

type fakeCustomerRepository struct {
	byUserID map[int64]*domain.Customer
	credited map[int64]int
}

func (f *fakeCustomerRepository) GetByUserID(_ context.Context, userID int64) (*domain.Customer, error) {
	cust, ok := f.byUserID[userID]
	if !ok {
		return nil, customerRepo.ErrCustomerNotFound
	}
	return cust, nil
}

func (f *fakeCustomerRepository) AddLoyaltyPoints(_ context.Context, id int64, points int) error {
	if f.credited == nil {
		f.credited = map[int64]int{}
	}
	f.credited[id] += points
	return nil
}

type fakeAuthClient struct {
	actors map[int64]*authservice.Actor
}

func (f *fakeAuthClient) GetActor(_ context.Context, userID int64) (*authservice.Actor, error) {
	actor, ok := f.actors[userID]
	if !ok {
		return nil, authservice.ErrActorNotFound
	}
	return actor, nil
}

type fakePublisher struct {
	events []queue.LoyaltyCreditEvent
	err    error
}

func (f *fakePublisher) PublishLoyaltyCredit(_ context.Context, event queue.LoyaltyCreditEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const (
	adminUserID    = int64(1)
	ownerUserID    = int64(10)
	strangerUserID = int64(20)
	customerID     = int64(5)
)

func testAppointment(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              1,
		CustomerID:      ptr.Ptr(customerID),
		ServiceID:       1,
		BoxID:           ptr.Ptr(int64(2)),
		AppointmentDate: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          status,
		TotalPrice:      decimal.RequireFromString("950.50"),
	}
}

type fixture struct {
	svc       *Service
	repo      *fakeAppointmentRepository
	history   *fakeHistoryRepository
	customers *fakeCustomerRepository
	publisher *fakePublisher
}

func newFixture(apts ...*domain.Appointment) *fixture {
	repo := newFakeAppointmentRepository(apts...)
	history := &fakeHistoryRepository{}
	customers := &fakeCustomerRepository{byUserID: map[int64]*domain.Customer{
		ownerUserID: {ID: customerID, UserID: ownerUserID},
	}}
	publisher := &fakePublisher{}
	auth := &fakeAuthClient{actors: map[int64]*authservice.Actor{
		adminUserID:    {ID: adminUserID, IsAdmin: true},
		ownerUserID:    {ID: ownerUserID, CustomerID: ptr.Ptr(customerID)},
		strangerUserID: {ID: strangerUserID, CustomerID: ptr.Ptr(int64(7))},
	}}

	svc := NewService(
		repo,
		history,
		customers,
		auth,
		publisher,
		&fakeTxManager{},
		nopLogger{},
	).WithTimeProvider(&fixedTime{now: time.Date(2025, 10, 15, 11, 30, 0, 0, time.UTC)})

	return &fixture{svc: svc, repo: repo, history: history, customers: customers, publisher: publisher}
}

func TestService_GetByID_Access(t *testing.T) {
	tests := []struct {
		name    string
		userID  int64
		wantErr error
	}{
		{name: "owner", userID: ownerUserID},
		{name: "admin", userID: adminUserID},
		{name: "stranger", userID: strangerUserID, wantErr: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(testAppointment(domain.StatusPending))

			resp, err := f.svc.GetByID(context.Background(), 1, tt.userID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), resp.ID)
			assert.Equal(t, "950.50", resp.TotalPrice)
		})
	}
}

func TestService_GetByID_GuestOnlyAdmin(t *testing.T) {
	apt := testAppointment(domain.StatusPending)
	apt.CustomerID = nil
	apt.GuestName = "Иван"
	apt.GuestPhone = "+79990001122"
	f := newFixture(apt)

	_, err := f.svc.GetByID(context.Background(), 1, ownerUserID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := f.svc.GetByID(context.Background(), 1, adminUserID)
	require.NoError(t, err)
	assert.Equal(t, "Иван", resp.GuestName)
}

func TestService_Confirm(t *testing.T) {
	f := newFixture(testAppointment(domain.StatusPending))

	resp, err := f.svc.Confirm(context.Background(), 1, adminUserID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, domain.StatusConfirmed, f.repo.statuses[1])
}

func TestService_Confirm_NotAdmin(t *testing.T) {
	f := newFixture(testAppointment(domain.StatusPending))

	_, err := f.svc.Confirm(context.Background(), 1, ownerUserID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_Confirm_WrongStatus(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture(testAppointment(status))

			_, err := f.svc.Confirm(context.Background(), 1, adminUserID)
			assert.ErrorIs(t, err, ErrWrongStatus)
		})
	}
}

func TestService_Complete(t *testing.T) {
	f := newFixture(testAppointment(domain.StatusConfirmed))

	resp, err := f.svc.Complete(context.Background(), 1, &models.CompleteAppointmentRequest{
		UserID:         adminUserID,
		MechanicNotes:  "заменены колодки",
		ActualDuration: 75,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)

	// Запись истории обслуживания
	require.Len(t, f.history.records, 1)
	rec := f.history.records[0]
	assert.Equal(t, int64(1), rec.AppointmentID)
	assert.Equal(t, "заменены колодки", rec.MechanicNotes)
	assert.Equal(t, 75, rec.ActualDuration)
	assert.Equal(t, "950.50", rec.FinalPrice.StringFixed(2))

	// Баллы лояльности: целая часть итоговой цены
	assert.Equal(t, 950, f.customers.credited[customerID])

	// Событие начисления опубликовано
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, 950, f.publisher.events[0].Points)
	assert.Equal(t, customerID, f.publisher.events[0].CustomerID)
}

func TestService_Complete_DefaultDuration(t *testing.T) {
	f := newFixture(testAppointment(domain.StatusInProgress))

	_, err := f.svc.Complete(context.Background(), 1, &models.CompleteAppointmentRequest{
		UserID: adminUserID,
	})
	require.NoError(t, err)

	require.Len(t, f.history.records, 1)
	assert.Equal(t, 60, f.history.records[0].ActualDuration)
}

func TestService_Complete_GuestNoPoints(t *testing.T) {
	apt := testAppointment(domain.StatusConfirmed)
	apt.CustomerID = nil
	apt.GuestName = "Иван"
	apt.GuestPhone = "+79990001122"
	f := newFixture(apt)

	_, err := f.svc.Complete(context.Background(), 1, &models.CompleteAppointmentRequest{
		UserID: adminUserID,
	})
	require.NoError(t, err)

	assert.Empty(t, f.customers.credited)
	assert.Empty(t, f.publisher.events)
	require.Len(t, f.history.records, 1)
}

func TestService_Complete_PublishFailureDoesNotFail(t *testing.T) {
	f := newFixture(testAppointment(domain.StatusConfirmed))
	f.publisher.err = assert.AnError

	resp, err := f.svc.Complete(context.Background(), 1, &models.CompleteAppointmentRequest{
		UserID: adminUserID,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.Equal(t, 950, f.customers.credited[customerID])
}

func TestService_Complete_WrongStatus(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{
		domain.StatusPending,
		domain.StatusCompleted,
		domain.StatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture(testAppointment(status))

			_, err := f.svc.Complete(context.Background(), 1, &models.CompleteAppointmentRequest{
				UserID: adminUserID,
			})
			assert.ErrorIs(t, err, ErrWrongStatus)
		})
	}
}

func TestService_Complete_NotAdmin(t *testing.T) {
	f := newFixture(testAppointment(domain.StatusConfirmed))

	_, err := f.svc.Complete(context.Background(), 1, &models.CompleteAppointmentRequest{
		UserID: ownerUserID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_Cancel_ByOwner(t *testing.T) {
	f := newFixture(testAppointment(domain.StatusPending))

	resp, err := f.svc.Cancel(context.Background(), 1, ownerUserID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
}

func TestService_Cancel_ByAdmin(t *testing.T) {
	f := newFixture(testAppointment(domain.StatusConfirmed))

	resp, err := f.svc.Cancel(context.Background(), 1, adminUserID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelledByAdmin), resp.Status)
}

func TestService_Cancel_ByStranger(t *testing.T) {
	f := newFixture(testAppointment(domain.StatusPending))

	_, err := f.svc.Cancel(context.Background(), 1, strangerUserID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_Cancel_WrongStatus(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture(testAppointment(status))

			_, err := f.svc.Cancel(context.Background(), 1, ownerUserID)
			assert.ErrorIs(t, err, ErrWrongStatus)
		})
	}
}

func TestService_GetUserAppointments(t *testing.T) {
	apt := testAppointment(domain.StatusPending)
	f := newFixture(apt)

	resp, err := f.svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		UserID:       ownerUserID,
		TargetUserID: ownerUserID,
	})
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, int64(1), resp.Appointments[0].ID)
}

func TestService_GetUserAppointments_StatusFilter(t *testing.T) {
	apt := testAppointment(domain.StatusCancelled)
	f := newFixture(apt)

	status := "pending"
	resp, err := f.svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		UserID:       ownerUserID,
		TargetUserID: ownerUserID,
		Status:       &status,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Appointments)
}

func TestService_GetUserAppointments_InvalidStatus(t *testing.T) {
	f := newFixture(testAppointment(domain.StatusPending))

	status := "unknown"
	_, err := f.svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		UserID:       ownerUserID,
		TargetUserID: ownerUserID,
		Status:       &status,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetUserAppointments_ForeignUser(t *testing.T) {
	f := newFixture(testAppointment(domain.StatusPending))

	_, err := f.svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		UserID:       strangerUserID,
		TargetUserID: ownerUserID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Администратор видит записи любого пользователя
	resp, err := f.svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		UserID:       adminUserID,
		TargetUserID: ownerUserID,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)
}

func TestService_GetServiceHistory(t *testing.T) {
	f := newFixture(testAppointment(domain.StatusCompleted))
	f.history.records = []*domain.ServiceHistory{
		{ID: 1, AppointmentID: 1, CompletedAt: time.Now(), ActualDuration: 60, FinalPrice: decimal.RequireFromString("950.50")},
	}

	resp, err := f.svc.GetServiceHistory(context.Background(), ownerUserID, ownerUserID)
	require.NoError(t, err)
	require.Len(t, resp.History, 1)

	_, err = f.svc.GetServiceHistory(context.Background(), strangerUserID, ownerUserID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_GetServiceHistory_NoCustomerProfile(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetServiceHistory(context.Background(), adminUserID, int64(404))
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}
