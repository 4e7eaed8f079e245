package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/STO-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/STO-AppointmentService/internal/infra/storage/appointment"
	customerRepo "github.com/m04kA/STO-AppointmentService/internal/infra/storage/customer"
	"github.com/m04kA/STO-AppointmentService/internal/infra/queue"
	authClient "github.com/m04kA/STO-AppointmentService/internal/integrations/authservice"
	"github.com/m04kA/STO-AppointmentService/internal/service/appointments/models"
)

// Service сервис жизненного цикла записей на обслуживание
type Service struct {
	appointmentRepo AppointmentRepository
	historyRepo     HistoryRepository
	customerRepo    CustomerRepository
	authClient      AuthServiceClient
	publisher       EventPublisher
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей.
// publisher может быть nil, тогда события лояльности не публикуются.
func NewService(
	appointmentRepo AppointmentRepository,
	historyRepo HistoryRepository,
	customerRepo CustomerRepository,
	authClient AuthServiceClient,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		historyRepo:     historyRepo,
		customerRepo:    customerRepo,
		authClient:      authClient,
		publisher:       publisher,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестирования)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает запись по ID
// Запись видят её владелец и администратор, гостевые записи - только администратор
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	actor, err := s.resolveActor(ctx, userID)
	if err != nil {
		return nil, err
	}

	apt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if !s.canAccess(apt, actor) {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(apt), nil
}

// GetUserAppointments получает записи пользователя
// Пользователь видит только свои записи, администратор - любые
// Опционально фильтрует по статусу
func (s *Service) GetUserAppointments(ctx context.Context, req *models.GetUserAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetUserAppointments: fetching appointments of user=%d for user=%d, status=%v",
		req.TargetUserID, req.UserID, req.Status)

	actor, err := s.resolveActor(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin && req.UserID != req.TargetUserID {
		s.logger.Warn("GetUserAppointments: access denied for user=%d to appointments of user=%d",
			req.UserID, req.TargetUserID)
		return nil, ErrAccessDenied
	}

	// Конвертируем статус из строки в domain.AppointmentStatus
	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := domain.ParseAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserAppointments: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	customer, err := s.resolveCustomer(ctx, req.TargetUserID)
	if err != nil {
		return nil, err
	}

	appointments, err := s.appointmentRepo.GetByCustomerID(ctx, customer.ID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserAppointments: repository error for customer=%d: %v", customer.ID, err)
		return nil, fmt.Errorf("%w: GetUserAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserAppointments: successfully fetched %d appointments for customer=%d",
		len(appointments), customer.ID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetServiceHistory получает историю обслуживания пользователя
// Пользователь видит только свою историю, администратор - любую
func (s *Service) GetServiceHistory(ctx context.Context, userID, targetUserID int64) (*models.ServiceHistoryListResponse, error) {
	s.logger.Info("GetServiceHistory: fetching history of user=%d for user=%d", targetUserID, userID)

	actor, err := s.resolveActor(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin && userID != targetUserID {
		s.logger.Warn("GetServiceHistory: access denied for user=%d to history of user=%d", userID, targetUserID)
		return nil, ErrAccessDenied
	}

	customer, err := s.resolveCustomer(ctx, targetUserID)
	if err != nil {
		return nil, err
	}

	records, err := s.historyRepo.GetByCustomerID(ctx, customer.ID)
	if err != nil {
		s.logger.Error("GetServiceHistory: repository error for customer=%d: %v", customer.ID, err)
		return nil, fmt.Errorf("%w: GetServiceHistory - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetServiceHistory: successfully fetched %d records for customer=%d", len(records), customer.ID)
	return models.FromDomainHistoryList(records), nil
}

// Confirm подтверждает запись
// Доступно только администратору, допустим переход pending -> confirmed
func (s *Service) Confirm(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("Confirm: confirming appointment id=%d by user=%d", id, userID)

	apt, err := s.getForAdmin(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if !apt.CanBeConfirmed() {
		s.logger.Warn("Confirm: appointment id=%d has status %s", id, apt.Status)
		return nil, ErrWrongStatus
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, domain.StatusConfirmed); err != nil {
		s.logger.Error("Confirm: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	apt.Status = domain.StatusConfirmed
	s.logger.Info("Confirm: successfully confirmed appointment id=%d", id)
	return models.FromDomainAppointment(apt), nil
}

// Complete завершает запись
// Доступно только администратору, допустим переход confirmed|in_progress -> completed.
// В одной транзакции меняется статус, создается запись истории обслуживания
// и начисляются баллы лояльности (целая часть итоговой цены). Событие
// начисления публикуется после фиксации транзакции, ошибки публикации
// не откатывают завершение.
func (s *Service) Complete(ctx context.Context, id int64, req *models.CompleteAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Complete: completing appointment id=%d by user=%d", id, req.UserID)

	actor, err := s.resolveActor(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin {
		s.logger.Warn("Complete: user=%d is not an administrator", req.UserID)
		return nil, ErrAccessDenied
	}

	now := s.timeProvider.Now()

	var result *domain.Appointment
	var points int

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		apt, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("Complete: appointment id=%d not found", id)
				return ErrAppointmentNotFound
			}
			s.logger.Error("Complete: repository error for appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
		}

		if !apt.CanBeCompleted() {
			s.logger.Warn("Complete: appointment id=%d has status %s", id, apt.Status)
			return ErrWrongStatus
		}

		if err := s.appointmentRepo.UpdateStatus(txCtx, id, domain.StatusCompleted); err != nil {
			s.logger.Error("Complete: failed to update status for appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: Complete - failed to update status: %v", ErrInternal, err)
		}

		actualDuration := req.ActualDuration
		if actualDuration <= 0 {
			actualDuration = apt.DurationMinutes
		}

		record := &domain.ServiceHistory{
			AppointmentID:  apt.ID,
			CompletedAt:    now,
			MechanicNotes:  req.MechanicNotes,
			ActualDuration: actualDuration,
			FinalPrice:     apt.TotalPrice,
		}

		if _, err := s.historyRepo.Create(txCtx, record); err != nil {
			s.logger.Error("Complete: failed to create history for appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: Complete - failed to create history: %v", ErrInternal, err)
		}

		// Баллы лояльности начисляются только зарегистрированным клиентам
		if apt.CustomerID != nil {
			points = int(apt.TotalPrice.IntPart())
			if points > 0 {
				if err := s.customerRepo.AddLoyaltyPoints(txCtx, *apt.CustomerID, points); err != nil {
					s.logger.Error("Complete: failed to add loyalty points for customer=%d: %v", *apt.CustomerID, err)
					return fmt.Errorf("%w: Complete - failed to add loyalty points: %v", ErrInternal, err)
				}
			}
		}

		apt.Status = domain.StatusCompleted
		result = apt
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Публикуем событие начисления после фиксации транзакции
	if s.publisher != nil && result.CustomerID != nil && points > 0 {
		event := queue.LoyaltyCreditEvent{
			AppointmentID: result.ID,
			CustomerID:    *result.CustomerID,
			Points:        points,
			Description:   fmt.Sprintf("appointment %d completed", result.ID),
			CompletedAt:   now,
		}
		if err := s.publisher.PublishLoyaltyCredit(ctx, event); err != nil {
			s.logger.Error("Complete: failed to publish loyalty event for appointment id=%d: %v", result.ID, err)
		}
	}

	s.logger.Info("Complete: successfully completed appointment id=%d, points=%d", id, points)
	return models.FromDomainAppointment(result), nil
}

// Cancel отменяет запись
// Владелец отменяет в статус cancelled, администратор - в cancelled_by_admin.
// Допустима отмена только из статусов pending и confirmed.
func (s *Service) Cancel(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", id, userID)

	actor, err := s.resolveActor(ctx, userID)
	if err != nil {
		return nil, err
	}

	apt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !apt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", id, apt.Status)
		return nil, ErrWrongStatus
	}

	// Определяем статус отмены в зависимости от роли
	var cancelStatus domain.AppointmentStatus
	switch {
	case s.isOwner(apt, actor):
		cancelStatus = domain.StatusCancelled
	case actor.IsAdmin:
		cancelStatus = domain.StatusCancelledByAdmin
	default:
		s.logger.Warn("Cancel: access denied for user=%d to cancel appointment id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, cancelStatus); err != nil {
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	apt.Status = cancelStatus
	s.logger.Info("Cancel: successfully cancelled appointment id=%d with status=%s", id, cancelStatus)
	return models.FromDomainAppointment(apt), nil
}

// Вспомогательные методы

// resolveActor получает действующего пользователя из AuthService
func (s *Service) resolveActor(ctx context.Context, userID int64) (*authClient.Actor, error) {
	actor, err := s.authClient.GetActor(ctx, userID)
	if err != nil {
		if errors.Is(err, authClient.ErrActorNotFound) {
			s.logger.Warn("resolveActor: user id=%d not found", userID)
			return nil, ErrAccessDenied
		}
		s.logger.Error("resolveActor: failed to get actor id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: resolveActor - failed to get actor: %v", ErrInternal, err)
	}
	return actor, nil
}

// resolveCustomer получает профиль клиента по ID пользователя
func (s *Service) resolveCustomer(ctx context.Context, userID int64) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("resolveCustomer: customer for user id=%d not found", userID)
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("resolveCustomer: repository error for user id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: resolveCustomer - repository error: %v", ErrInternal, err)
	}
	return customer, nil
}

// getForAdmin получает запись, требуя роль администратора
func (s *Service) getForAdmin(ctx context.Context, id int64, userID int64) (*domain.Appointment, error) {
	actor, err := s.resolveActor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin {
		s.logger.Warn("getForAdmin: user=%d is not an administrator", userID)
		return nil, ErrAccessDenied
	}

	apt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("getForAdmin: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("getForAdmin: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getForAdmin - repository error: %v", ErrInternal, err)
	}

	return apt, nil
}

// canAccess проверяет, что пользователь имеет доступ к записи
func (s *Service) canAccess(apt *domain.Appointment, actor *authClient.Actor) bool {
	if actor.IsAdmin {
		return true
	}
	return s.isOwner(apt, actor)
}

// isOwner проверяет, что пользователь является владельцем записи
func (s *Service) isOwner(apt *domain.Appointment, actor *authClient.Actor) bool {
	if apt.CustomerID == nil || actor.CustomerID == nil {
		return false
	}
	return *apt.CustomerID == *actor.CustomerID
}
