package create_appointment

import (
	"time"

	"github.com/m04kA/STO-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/STO-AppointmentService/internal/usecase/create_appointment"
	"github.com/m04kA/STO-AppointmentService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ServiceID       int64   `json:"serviceId"`
	AppointmentDate string  `json:"appointmentDate"` // "2025-10-15"
	StartTime       string  `json:"startTime"`       // "10:00"
	GuestName       string  `json:"guestName,omitempty"`
	GuestPhone      string  `json:"guestPhone,omitempty"`
	GuestEmail      string  `json:"guestEmail,omitempty"`
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
func (r *CreateAppointmentRequest) ToUseCaseRequest(userID *int64) (*createAppointment.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.AppointmentDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		UserID:     userID,
		ServiceID:  r.ServiceID,
		Date:       date,
		StartTime:  startTime,
		GuestName:  r.GuestName,
		GuestPhone: r.GuestPhone,
		GuestEmail: r.GuestEmail,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
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
