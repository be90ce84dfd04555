package get_day_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments"
)

const (
	msgMissingDate   = "дата обязательна"
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/appointments
// Query params: date (обязательно), includeCancelled, status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	serviceReq, err := ToServiceRequest(query.Get("date"), query.Get("includeCancelled"), query.Get("status"))
	if err != nil {
		h.logger.Warn("GET /admin/appointments - Invalid parameters: %v", err)
		if errors.Is(err, errMissingDate) {
			handlers.RespondBadRequest(w, msgMissingDate)
		} else {
			handlers.RespondBadRequest(w, msgInvalidParams)
		}
		return
	}

	result, err := h.service.ListByDate(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /admin/appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /admin/appointments - Failed to list appointments: date=%s, error=%v",
				query.Get("date"), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/appointments - Appointments retrieved: date=%s, count=%d",
		result.Date, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
