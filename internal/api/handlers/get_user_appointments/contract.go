package get_user_appointments

import (
	"context"

	"github.com/m04kA/STO-AppointmentService/internal/service/appointments/models"
)

// AppointmentService - сервис управления записями
type AppointmentService interface {
	GetUserAppointments(ctx context.Context, req *models.GetUserAppointmentsRequest) (*models.AppointmentListResponse, error)
}

// Logger - интерфейс для логирования
type Logger interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}
