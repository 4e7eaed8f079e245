package complete_appointment

import "github.com/m04kA/STO-AppointmentService/internal/service/appointments/models"

// CompleteAppointmentRequest - тело запроса на завершение записи.
// actualDuration может отсутствовать, тогда берется плановая длительность.
type CompleteAppointmentRequest struct {
	MechanicNotes  string `json:"mechanicNotes,omitempty"`
	ActualDuration int    `json:"actualDuration,omitempty"`
}

func (r *CompleteAppointmentRequest) ToServiceRequest(userID int64) *models.CompleteAppointmentRequest {
	return &models.CompleteAppointmentRequest{
		UserID:         userID,
		MechanicNotes:  r.MechanicNotes,
		ActualDuration: r.ActualDuration,
	}
}
