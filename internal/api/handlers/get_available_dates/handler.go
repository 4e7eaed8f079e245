package get_available_dates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/STO-AppointmentService/internal/api/handlers"
	"github.com/m04kA/STO-AppointmentService/internal/usecase/get_availability"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidExcludeID = "некорректный ID исключаемой записи"
	msgServiceNotFound  = "услуга не найдена"
	msgInvalidInput     = "некорректные данные запроса"
)

type Handler struct {
	useCase AvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase AvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/available-dates?excludeAppointmentId=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /services/{id}/available-dates - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	req := &get_availability.DatesRequest{
		ServiceID: serviceID,
	}
	if raw := r.URL.Query().Get("excludeAppointmentId"); raw != "" {
		excludeID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /services/{id}/available-dates - Invalid exclude appointment ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidExcludeID)
			return
		}
		req.ExcludeAppointmentID = &excludeID
	}

	result, err := h.useCase.Dates(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, get_availability.ErrServiceNotFound):
			h.logger.Warn("GET /services/{id}/available-dates - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, get_availability.ErrInvalidInput):
			h.logger.Warn("GET /services/{id}/available-dates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /services/{id}/available-dates - Failed to get dates: service_id=%d, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
