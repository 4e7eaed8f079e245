package complete_appointment

import (
	"context"

	"github.com/m04kA/STO-AppointmentService/internal/service/appointments/models"
)

// AppointmentService - сервис управления записями
type AppointmentService interface {
	Complete(ctx context.Context, appointmentID int64, req *models.CompleteAppointmentRequest) (*models.AppointmentResponse, error)
}

// Logger - интерфейс для логирования
type Logger interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}
