package get_service_history

import (
	"context"

	"github.com/m04kA/STO-AppointmentService/internal/service/appointments/models"
)

// AppointmentService - сервис управления записями
type AppointmentService interface {
	GetServiceHistory(ctx context.Context, userID int64, targetUserID int64) (*models.ServiceHistoryListResponse, error)
}

// Logger - интерфейс для логирования
type Logger interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}
