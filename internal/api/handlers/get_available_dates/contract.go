package get_available_dates

import (
	"context"

	"github.com/m04kA/STO-AppointmentService/internal/usecase/get_availability"
)

// AvailabilityUseCase - usecase запросов доступности
type AvailabilityUseCase interface {
	Dates(ctx context.Context, req *get_availability.DatesRequest) (*get_availability.DatesResponse, error)
}

// Logger - интерфейс для логирования
type Logger interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}
