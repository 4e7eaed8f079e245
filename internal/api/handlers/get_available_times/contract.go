package get_available_times

import (
	"context"

	"github.com/m04kA/STO-AppointmentService/internal/usecase/get_availability"
)

// AvailabilityUseCase - usecase запросов доступности
type AvailabilityUseCase interface {
	Times(ctx context.Context, req *get_availability.TimesRequest) (*get_availability.TimesResponse, error)
}

// Logger - интерфейс для логирования
type Logger interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}
