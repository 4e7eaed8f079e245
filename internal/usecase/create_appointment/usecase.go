package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/STO-AppointmentService/internal/domain"
	serviceRepo "github.com/m04kA/STO-AppointmentService/internal/infra/storage/service"
	authClient "github.com/m04kA/STO-AppointmentService/internal/integrations/authservice"
)

// UseCase use case для создания записи на обслуживание
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

// Execute выполняет use case создания записи.
// Подбор бокса, расчет цены и вставка выполняются в сериализуемой
// транзакции, чтобы два параллельных запроса не заняли один слот.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: user=%v, service=%d, date=%s, time=%s",
		req.UserID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация даты
	if err := validateDate(req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	// 4. Определяем клиента: для авторизованного пользователя проверяем
	// блокировку через AuthService, гость проходит без профиля
	var customerID *int64
	if req.UserID != nil {
		actor, err := uc.authClient.GetActor(ctx, *req.UserID)
		if err != nil {
			if errors.Is(err, authClient.ErrActorNotFound) {
				uc.logger.Warn("CreateAppointment: user id=%d not found", *req.UserID)
				return nil, ErrActorNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get actor id=%d: %v", *req.UserID, err)
			return nil, fmt.Errorf("%w: failed to get actor: %v", ErrInternal, err)
		}

		if actor.IsBlocked {
			uc.logger.Warn("CreateAppointment: user id=%d is blocked", *req.UserID)
			return nil, ErrCustomerBlocked
		}

		customerID = actor.CustomerID
	}

	// 5. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	// 6. Подбор бокса, расчет цены и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Подбираем первый свободный бокс (чтение занятости с FOR UPDATE)
		box, err := uc.allocator.FindFreeBox(txCtx, req.Date, req.StartTime, service, nil)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to find free box: %v", err)
			return fmt.Errorf("%w: failed to find free box: %v", ErrInternal, err)
		}
		if box == nil {
			uc.logger.Warn("CreateAppointment: no free box for date=%s time=%s",
				req.Date.Format(domain.DateFormat), req.StartTime)
			return ErrNoCapacity
		}

		// 6.2. Рассчитываем итоговую цену со скидкой лояльности
		price, err := uc.pricing.PriceFor(txCtx, customerID, service)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to calculate price: %v", err)
			return fmt.Errorf("%w: failed to calculate price: %v", ErrInternal, err)
		}

		// 6.3. Создаем запись в статусе pending
		apt := &domain.Appointment{
			CustomerID:      customerID,
			GuestName:       req.GuestName,
			GuestPhone:      req.GuestPhone,
			GuestEmail:      req.GuestEmail,
			ServiceID:       service.ID,
			BoxID:           &box.ID,
			AppointmentDate: req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.EffectiveDuration(),
			Status:          domain.StatusPending,
			Notes:           req.Notes,
			TotalPrice:      price,
		}

		created, err := uc.appointmentRepo.Create(txCtx, apt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d, box=%d, price=%s",
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
