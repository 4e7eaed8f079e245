package edit_appointment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/STO-AppointmentService/internal/domain"
	"github.com/m04kA/STO-AppointmentService/internal/integrations/authservice"
	"github.com/m04kA/STO-AppointmentService/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, apt *domain.Appointment) error
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// BoxAllocator интерфейс подбора свободного бокса
type BoxAllocator interface {
	FindFreeBox(ctx context.Context, date time.Time, start types.TimeString, service *domain.Service, excludeAppointmentID *int64) (*domain.Box, error)
}

// PriceCalculator интерфейс расчета итоговой цены со скидкой
type PriceCalculator interface {
	PriceFor(ctx context.Context, customerID *int64, service *domain.Service) (decimal.Decimal, error)
}

// AuthServiceClient интерфейс клиента для AuthService
type AuthServiceClient interface {
	GetActor(ctx context.Context, userID int64) (*authservice.Actor, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
