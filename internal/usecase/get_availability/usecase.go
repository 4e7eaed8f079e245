package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/STO-AppointmentService/internal/domain"
	serviceRepo "github.com/m04kA/STO-AppointmentService/internal/infra/storage/service"
)

// UseCase use case запросов доступности: свободные даты и времена начала
type UseCase struct {
	serviceRepo ServiceRepository
	scheduler   Scheduler
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(serviceRepo ServiceRepository, scheduler Scheduler, logger Logger) *UseCase {
	return &UseCase{
		serviceRepo: serviceRepo,
		scheduler:   scheduler,
		logger:      logger,
	}
}

// Dates возвращает даты следующих domain.AvailabilityHorizonDays дней,
// на которые есть хотя бы один свободный слот под услугу
func (uc *UseCase) Dates(ctx context.Context, req *DatesRequest) (*DatesResponse, error) {
	uc.logger.Info("GetAvailableDates: service=%d, exclude=%v", req.ServiceID, req.ExcludeAppointmentID)

	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	service, err := uc.getService(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}

	dates, err := uc.scheduler.AvailableDates(ctx, service, domain.AvailabilityHorizonDays, req.ExcludeAppointmentID)
	if err != nil {
		uc.logger.Error("GetAvailableDates: scheduler error for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to compute available dates: %v", ErrInternal, err)
	}

	resp := &DatesResponse{
		ServiceID: req.ServiceID,
		Dates:     make([]string, 0, len(dates)),
	}
	for _, d := range dates {
		resp.Dates = append(resp.Dates, d.Format(domain.DateFormat))
	}

	uc.logger.Info("GetAvailableDates: %d dates available for service=%d", len(resp.Dates), req.ServiceID)
	return resp, nil
}

// Times возвращает свободные времена начала на дату по всем активным боксам
func (uc *UseCase) Times(ctx context.Context, req *TimesRequest) (*TimesResponse, error) {
	uc.logger.Info("GetAvailableTimes: service=%d, date=%s, exclude=%v",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.ExcludeAppointmentID)

	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	service, err := uc.getService(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}

	times, err := uc.scheduler.AvailableTimes(ctx, req.Date, service, req.ExcludeAppointmentID)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: scheduler error for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to compute available times: %v", ErrInternal, err)
	}

	resp := &TimesResponse{
		ServiceID: req.ServiceID,
		Date:      req.Date.Format(domain.DateFormat),
		Times:     make([]string, 0, len(times)),
	}
	for _, t := range times {
		resp.Times = append(resp.Times, t.String())
	}

	uc.logger.Info("GetAvailableTimes: %d times available for service=%d on %s",
		len(resp.Times), req.ServiceID, req.Date.Format(domain.DateFormat))
	return resp, nil
}

func (uc *UseCase) getService(ctx context.Context, id int64) (*domain.Service, error) {
	service, err := uc.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailability: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailability: failed to get service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	return service, nil
}
