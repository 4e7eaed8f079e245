package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/STO-AppointmentService/internal/domain"
	"github.com/m04kA/STO-AppointmentService/pkg/types"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// Scheduler интерфейс запросов доступности к планировщику
type Scheduler interface {
	AvailableDates(ctx context.Context, service *domain.Service, horizonDays int, excludeAppointmentID *int64) ([]time.Time, error)
	AvailableTimes(ctx context.Context, date time.Time, service *domain.Service, excludeAppointmentID *int64) ([]types.TimeString, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
