package edit_appointment

import (
	"time"

	"github.com/m04kA/STO-AppointmentService/internal/domain"
	editAppointment "github.com/m04kA/STO-AppointmentService/internal/usecase/edit_appointment"
	"github.com/m04kA/STO-AppointmentService/pkg/types"
)

// EditAppointmentRequest HTTP request model.
// Отсутствующие поля не изменяются.
type EditAppointmentRequest struct {
	ServiceID       *int64  `json:"serviceId,omitempty"`
	AppointmentDate *string `json:"appointmentDate,omitempty"` // "2025-10-15"
	StartTime       *string `json:"startTime,omitempty"`       // "10:00"
	Notes           *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	CustomerID      *int64  `json:"customerId,omitempty"`
	GuestName       string  `json:"guestName,omitempty"`
	GuestPhone      string  `json:"guestPhone,omitempty"`
	GuestEmail      string  `json:"guestEmail,omitempty"`
	ServiceID       int64   `json:"serviceId"`
	BoxID           int64   `json:"boxId"`
	AppointmentDate string  `json:"appointmentDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	TotalPrice      string  `json:"totalPrice"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *EditAppointmentRequest) ToUseCaseRequest(appointmentID int64, userID *int64) (*editAppointment.Request, error) {
	req := &editAppointment.Request{
		AppointmentID: appointmentID,
		UserID:        userID,
		ServiceID:     r.ServiceID,
		Notes:         r.Notes,
	}

	if r.AppointmentDate != nil {
		date, err := time.Parse(domain.DateFormat, *r.AppointmentDate)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if r.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *editAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		CustomerID:      resp.CustomerID,
		GuestName:       resp.GuestName,
		GuestPhone:      resp.GuestPhone,
		GuestEmail:      resp.GuestEmail,
		ServiceID:       resp.ServiceID,
		BoxID:           resp.BoxID,
		AppointmentDate: resp.AppointmentDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		TotalPrice:      resp.TotalPrice.StringFixed(2),
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
