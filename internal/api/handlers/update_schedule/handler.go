package update_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/schedule"
	"github.com/m04kA/SMC-BarberBooking/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNothingToUpdate    = "не передано ни одного поля для изменения"
	msgNotFound           = "настройки мастерской не найдены"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("PUT /admin/schedule - Validation failed: %v", err)
			handlers.RespondValidationError(w, err)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /admin/schedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgNothingToUpdate)

		case errors.Is(err, schedule.ErrScheduleNotFound):
			h.logger.Warn("PUT /admin/schedule - Schedule not found")
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PUT /admin/schedule - Failed to update schedule: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/schedule - Schedule updated: slot=%dmin, days=%v",
		result.SlotDurationMinutes, result.WorkingDays)
	handlers.RespondJSON(w, http.StatusOK, result)
}
