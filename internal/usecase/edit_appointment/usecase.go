package edit_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/STO-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/STO-AppointmentService/internal/infra/storage/appointment"
	serviceRepo "github.com/m04kA/STO-AppointmentService/internal/infra/storage/service"
	authClient "github.com/m04kA/STO-AppointmentService/internal/integrations/authservice"
)

// UseCase use case для редактирования записи на обслуживание
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	allocator       BoxAllocator
	pricing         PriceCalculator
	authClient      AuthServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	allocator BoxAllocator,
	pricing PriceCalculator,
	authClient AuthServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		allocator:       allocator,
		pricing:         pricing,
		authClient:      authClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестирования)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case редактирования записи.
// Редактируется только запись в статусе pending и не позднее, чем за
// domain.EditCutoff до начала. При смене даты, времени или услуги бокс
// подбирается заново, собственная запись исключается из проверки конфликтов.
// Цена пересчитывается всегда, статус остается pending.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("EditAppointment: id=%d, user=%v", req.AppointmentID, req.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("EditAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Определяем действующего пользователя
	var actor *authClient.Actor
	if req.UserID != nil {
		var err error
		actor, err = uc.authClient.GetActor(ctx, *req.UserID)
		if err != nil {
			if errors.Is(err, authClient.ErrActorNotFound) {
				uc.logger.Warn("EditAppointment: user id=%d not found", *req.UserID)
				return nil, ErrActorNotFound
			}
			uc.logger.Error("EditAppointment: failed to get actor id=%d: %v", *req.UserID, err)
			return nil, fmt.Errorf("%w: failed to get actor: %v", ErrInternal, err)
		}
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	// 4. Проверки и обновление в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем запись
		apt, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("EditAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("EditAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 4.2. Проверяем владельца. Гостевые записи не имеют владельца,
		// для них проверка пропускается. Администратор может редактировать
		// любую запись.
		if err := checkOwnership(apt, actor); err != nil {
			uc.logger.Warn("EditAppointment: ownership check failed for id=%d: %v", apt.ID, err)
			return err
		}

		// 4.3. Проверяем статус
		if !apt.CanBeEdited() {
			uc.logger.Warn("EditAppointment: appointment id=%d has status %s", apt.ID, apt.Status)
			return ErrWrongStatus
		}

		// 4.4. Проверяем срок редактирования
		editable, err := apt.IsEditableAt(now)
		if err != nil {
			uc.logger.Error("EditAppointment: failed to compute edit cutoff for id=%d: %v", apt.ID, err)
			return fmt.Errorf("%w: failed to compute edit cutoff: %v", ErrInternal, err)
		}
		if !editable {
			uc.logger.Warn("EditAppointment: appointment id=%d is too close to start", apt.ID)
			return ErrTooSoon
		}

		// 4.5. Применяем изменения
		slotChanged := false

		newServiceID := apt.ServiceID
		if req.ServiceID != nil && *req.ServiceID != apt.ServiceID {
			newServiceID = *req.ServiceID
			slotChanged = true
		}

		newDate := apt.AppointmentDate
		if req.Date != nil && !req.Date.Equal(apt.AppointmentDate) {
			newDate = *req.Date
			slotChanged = true
		}

		newStart := apt.StartTime
		if req.StartTime != nil && *req.StartTime != apt.StartTime {
			newStart = *req.StartTime
			slotChanged = true
		}

		// 4.6. Получаем услугу (текущую или новую) для длительности и цены
		service, err := uc.serviceRepo.GetByID(txCtx, newServiceID)
		if err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				uc.logger.Warn("EditAppointment: service id=%d not found", newServiceID)
				return ErrServiceNotFound
			}
			uc.logger.Error("EditAppointment: failed to get service id=%d: %v", newServiceID, err)
			return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}

		// 4.7. При смене слота валидируем новую дату и подбираем бокс заново,
		// исключая собственную запись из проверки конфликтов
		if slotChanged {
			if err := validateDate(newDate, newStart, now); err != nil {
				uc.logger.Warn("EditAppointment: date validation failed: %v", err)
				return err
			}

			box, err := uc.allocator.FindFreeBox(txCtx, newDate, newStart, service, &apt.ID)
			if err != nil {
				uc.logger.Error("EditAppointment: failed to find free box: %v", err)
				return fmt.Errorf("%w: failed to find free box: %v", ErrInternal, err)
			}
			if box == nil {
				uc.logger.Warn("EditAppointment: no free box for date=%s time=%s",
					newDate.Format(domain.DateFormat), newStart)
				return ErrNoCapacity
			}

			apt.BoxID = &box.ID
		}

		// 4.8. Цена пересчитывается всегда: скидка могла измениться
		price, err := uc.pricing.PriceFor(txCtx, apt.CustomerID, service)
		if err != nil {
			uc.logger.Error("EditAppointment: failed to calculate price: %v", err)
			return fmt.Errorf("%w: failed to calculate price: %v", ErrInternal, err)
		}

		apt.ServiceID = newServiceID
		apt.AppointmentDate = newDate
		apt.StartTime = newStart
		apt.DurationMinutes = service.EffectiveDuration()
		apt.TotalPrice = price
		if req.Notes != nil {
			apt.Notes = req.Notes
		}

		// 4.9. Сохраняем изменения
		if err := uc.appointmentRepo.Update(txCtx, apt); err != nil {
			uc.logger.Error("EditAppointment: failed to update appointment id=%d: %v", apt.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		result = apt
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("EditAppointment: successfully updated appointment id=%d, box=%d, price=%s",
		result.ID, *result.BoxID, result.TotalPrice)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		CustomerID:      result.CustomerID,
		GuestName:       result.GuestName,
		GuestPhone:      result.GuestPhone,
		GuestEmail:      result.GuestEmail,
		ServiceID:       result.ServiceID,
		BoxID:           *result.BoxID,
		AppointmentDate: result.AppointmentDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		TotalPrice:      result.TotalPrice,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// checkOwnership проверяет право действующего пользователя на запись
func checkOwnership(apt *domain.Appointment, actor *authClient.Actor) error {
	// Гостевая запись не имеет владельца
	if apt.IsGuest() {
		return nil
	}

	if actor == nil {
		return ErrNotOwner
	}
	if actor.IsAdmin {
		return nil
	}
	if actor.CustomerID == nil || *actor.CustomerID != *apt.CustomerID {
		return ErrNotOwner
	}

	return nil
}
