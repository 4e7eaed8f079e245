package scheduling

import (
	"context"
	"time"

	"github.com/m04kA/STO-AppointmentService/internal/domain"
)

// BoxProvider интерфейс получения боксов
type BoxProvider interface {
	// ListActive возвращает активные боксы, упорядоченные по возрастанию ID
	ListActive(ctx context.Context) ([]*domain.Box, error)
}

// AppointmentProvider интерфейс получения записей для проверки конфликтов
type AppointmentProvider interface {
	// GetActiveByBoxAndDate возвращает активные записи бокса на дату
	// (статусы pending, confirmed, in_progress)
	GetActiveByBoxAndDate(ctx context.Context, boxID int64, date time.Time) ([]*domain.Appointment, error)
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
