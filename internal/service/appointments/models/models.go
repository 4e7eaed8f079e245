package models

import (
	"time"

	"github.com/m04kA/STO-AppointmentService/internal/domain"
)

// Request модели

// CompleteAppointmentRequest запрос на завершение записи
type CompleteAppointmentRequest struct {
	UserID         int64  `json:"userId"`
	MechanicNotes  string `json:"mechanicNotes"`
	ActualDuration int    `json:"actualDuration"`
}

// GetUserAppointmentsRequest запрос на получение записей пользователя
type GetUserAppointmentsRequest struct {
	UserID       int64   `json:"userId"`       // действующий пользователь
	TargetUserID int64   `json:"targetUserId"` // чьи записи запрашиваются
	Status       *string `json:"status,omitempty"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	CustomerID      *int64  `json:"customerId,omitempty"`
	GuestName       string  `json:"guestName,omitempty"`
	GuestPhone      string  `json:"guestPhone,omitempty"`
	GuestEmail      string  `json:"guestEmail,omitempty"`
	ServiceID       int64   `json:"serviceId"`
	BoxID           *int64  `json:"boxId,omitempty"`
	AppointmentDate string  `json:"appointmentDate"` // "2025-10-15"
	StartTime       string  `json:"startTime"`       // "10:00"
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	TotalPrice      string  `json:"totalPrice"` // десятичная строка, например "975.00"
	Notes           *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// ServiceHistoryResponse ответ с записью истории обслуживания
type ServiceHistoryResponse struct {
	ID             int64  `json:"id"`
	AppointmentID  int64  `json:"appointmentId"`
	CompletedAt    string `json:"completedAt"` // ISO 8601
	MechanicNotes  string `json:"mechanicNotes,omitempty"`
	ActualDuration int    `json:"actualDuration"`
	FinalPrice     string `json:"finalPrice"`
}

// ServiceHistoryListResponse ответ со списком истории обслуживания
type ServiceHistoryListResponse struct {
	History []ServiceHistoryResponse `json:"history"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:              a.ID,
		CustomerID:      a.CustomerID,
		GuestName:       a.GuestName,
		GuestPhone:      a.GuestPhone,
		GuestEmail:      a.GuestEmail,
		ServiceID:       a.ServiceID,
		BoxID:           a.BoxID,
		AppointmentDate: a.AppointmentDate.Format(domain.DateFormat),
		StartTime:       a.StartTime.String(),
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		TotalPrice:      a.TotalPrice.StringFixed(2),
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, apt := range appointments {
		if aptResp := FromDomainAppointment(apt); aptResp != nil {
			resp.Appointments = append(resp.Appointments, *aptResp)
		}
	}

	return resp
}

// FromDomainHistory конвертирует запись истории в DTO
func FromDomainHistory(h *domain.ServiceHistory) *ServiceHistoryResponse {
	if h == nil {
		return nil
	}

	return &ServiceHistoryResponse{
		ID:             h.ID,
		AppointmentID:  h.AppointmentID,
		CompletedAt:    h.CompletedAt.Format(time.RFC3339),
		MechanicNotes:  h.MechanicNotes,
		ActualDuration: h.ActualDuration,
		FinalPrice:     h.FinalPrice.StringFixed(2),
	}
}

// FromDomainHistoryList конвертирует список записей истории в DTO
func FromDomainHistoryList(records []*domain.ServiceHistory) *ServiceHistoryListResponse {
	resp := &ServiceHistoryListResponse{
		History: make([]ServiceHistoryResponse, 0, len(records)),
	}

	for _, rec := range records {
		if recResp := FromDomainHistory(rec); recResp != nil {
			resp.History = append(resp.History, *recResp)
		}
	}

	return resp
}
