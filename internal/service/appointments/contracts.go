package appointments

import (
	"context"
	"time"

	"github.com/m04kA/STO-AppointmentService/internal/domain"
	"github.com/m04kA/STO-AppointmentService/internal/infra/queue"
	"github.com/m04kA/STO-AppointmentService/internal/integrations/authservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByCustomerID(ctx context.Context, customerID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
}

// HistoryRepository интерфейс репозитория истории обслуживания
type HistoryRepository interface {
	Create(ctx context.Context, rec *domain.ServiceHistory) (*domain.ServiceHistory, error)
	GetByCustomerID(ctx context.Context, customerID int64) ([]*domain.ServiceHistory, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Customer, error)
	AddLoyaltyPoints(ctx context.Context, id int64, points int) error
}

// AuthServiceClient интерфейс клиента для AuthService
type AuthServiceClient interface {
	GetActor(ctx context.Context, userID int64) (*authservice.Actor, error)
}

// EventPublisher интерфейс публикации доменных событий.
// nil-публикация допустима: события лояльности опциональны.
type EventPublisher interface {
	PublishLoyaltyCredit(ctx context.Context, event queue.LoyaltyCreditEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
