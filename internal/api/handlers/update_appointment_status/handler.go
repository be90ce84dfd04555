package update_appointment_status

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments/models"
)

// Действия над записью в URL
const (
	ActionConfirm  = "confirm"
	ActionComplete = "complete"
	ActionNoShow   = "no-show"
	ActionCancel   = "cancel"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgUnknownAction        = "неизвестное действие"
	msgNotFound             = "запись не найдена"
	msgInvalidTransition    = "переход в этот статус невозможен"
	msgSlotTaken            = "слот уже занят другой записью"
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

// Handle POST /api/v1/admin/appointments/{appointmentId}/{action}
// action: confirm, complete, no-show, cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	action := vars["action"]

	id, err := uuid.Parse(vars["appointmentId"])
	if err != nil {
		h.logger.Warn("POST /admin/appointments/{id}/%s - Invalid appointment ID: %v", action, err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	apply, ok := h.actionFor(action)
	if !ok {
		h.logger.Warn("POST /admin/appointments/{id}/%s - Unknown action: id=%s", action, id)
		handlers.RespondBadRequest(w, msgUnknownAction)
		return
	}

	result, err := apply(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("POST /admin/appointments/{id}/%s - Appointment not found: id=%s", action, id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrInvalidTransition):
			h.logger.Warn("POST /admin/appointments/{id}/%s - Invalid transition: id=%s, error=%v", action, id, err)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, appointments.ErrSlotAlreadyTaken):
			h.logger.Warn("POST /admin/appointments/{id}/%s - Slot taken: id=%s", action, id)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		default:
			h.logger.Error("POST /admin/appointments/{id}/%s - Failed to update status: id=%s, error=%v", action, id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/appointments/{id}/%s - Status updated: id=%s, status=%s", action, id, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) actionFor(action string) (func(context.Context, uuid.UUID) (*models.AppointmentResponse, error), bool) {
	switch action {
	case ActionConfirm:
		return h.service.Confirm, true
	case ActionComplete:
		return h.service.Complete, true
	case ActionNoShow:
		return h.service.MarkNoShow, true
	case ActionCancel:
		return h.service.Cancel, true
	default:
		return nil, false
	}
}
