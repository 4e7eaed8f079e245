package edit_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/STO-AppointmentService/internal/api/handlers"
	"github.com/m04kA/STO-AppointmentService/internal/api/middleware"
	editAppointment "github.com/m04kA/STO-AppointmentService/internal/usecase/edit_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateOrTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgNotFound             = "запись не найдена"
	msgServiceNotFound      = "услуга не найдена"
	msgUserNotFound         = "пользователь не найден"
	msgNotOwner             = "запись принадлежит другому клиенту"
	msgWrongStatus          = "запись нельзя редактировать в текущем статусе"
	msgTooSoon              = "до начала записи осталось меньше двух часов"
	msgNoCapacity           = "нет свободных боксов на выбранное время"
	msgInvalidDate          = "некорректная дата записи"
	msgInvalidInput         = "некорректные данные записи"
)

type Handler struct {
	useCase EditAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase EditAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}
// Аутентификация опциональна: гостевые записи редактируются без X-User-ID
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req EditAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var userID *int64
	if id, ok := middleware.GetUserID(r.Context()); ok {
		userID = &id
	}

	useCaseReq, err := req.ToUseCaseRequest(appointmentID, userID)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, editAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id} - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, editAppointment.ErrServiceNotFound):
			h.logger.Warn("PATCH /appointments/{id} - Service not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, editAppointment.ErrActorNotFound):
			h.logger.Warn("PATCH /appointments/{id} - User not found: user_id=%v", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, editAppointment.ErrNotOwner):
			h.logger.Warn("PATCH /appointments/{id} - Not owner: appointment_id=%d, user_id=%v", appointmentID, userID)
			handlers.RespondForbidden(w, msgNotOwner)

		case errors.Is(err, editAppointment.ErrWrongStatus):
			h.logger.Warn("PATCH /appointments/{id} - Wrong status: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgWrongStatus)

		case errors.Is(err, editAppointment.ErrTooSoon):
			h.logger.Warn("PATCH /appointments/{id} - Too soon: appointment_id=%d", appointmentID)
			handlers.RespondUnprocessableEntity(w, msgTooSoon)

		case errors.Is(err, editAppointment.ErrNoCapacity):
			h.logger.Warn("PATCH /appointments/{id} - No capacity: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgNoCapacity)

		case errors.Is(err, editAppointment.ErrInvalidDate):
			h.logger.Warn("PATCH /appointments/{id} - Invalid date: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, editAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /appointments/{id} - Failed to edit appointment: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("PATCH /appointments/{id} - Appointment updated successfully: appointment_id=%d, box_id=%d",
		result.ID, result.BoxID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
