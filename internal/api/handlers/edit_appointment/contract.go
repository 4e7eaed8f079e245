package edit_appointment

import (
	"context"

	editAppointment "github.com/m04kA/STO-AppointmentService/internal/usecase/edit_appointment"
)

type EditAppointmentUseCase interface {
	Execute(ctx context.Context, req *editAppointment.Request) (*editAppointment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
