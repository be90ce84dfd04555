package update_appointment_status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// recordingService запоминает вызванное действие
type recordingService struct {
	called string
	err    error
}

func (s *recordingService) do(name string, id uuid.UUID) (*models.AppointmentResponse, error) {
	s.called = name
	if s.err != nil {
		return nil, s.err
	}
	return &models.AppointmentResponse{ID: id.String(), Status: name}, nil
}

func (s *recordingService) Confirm(_ context.Context, id uuid.UUID) (*models.AppointmentResponse, error) {
	return s.do("confirmed", id)
}

func (s *recordingService) Complete(_ context.Context, id uuid.UUID) (*models.AppointmentResponse, error) {
	return s.do("completed", id)
}

func (s *recordingService) MarkNoShow(_ context.Context, id uuid.UUID) (*models.AppointmentResponse, error) {
	return s.do("no_show", id)
}

func (s *recordingService) Cancel(_ context.Context, id uuid.UUID) (*models.AppointmentResponse, error) {
	return s.do("cancelled", id)
}

func send(h *Handler, id, action string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/appointments/"+id+"/"+action, nil)
	req = mux.SetURLVars(req, map[string]string{"appointmentId": id, "action": action})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Actions(t *testing.T) {
	tests := []struct {
		action string
		status string
	}{
		{ActionConfirm, "confirmed"},
		{ActionComplete, "completed"},
		{ActionNoShow, "no_show"},
		{ActionCancel, "cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			svc := &recordingService{}
			rec := send(NewHandler(svc, nopLogger{}), uuid.NewString(), tt.action)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.status, svc.called)

			var body models.AppointmentResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body.Status)
		})
	}
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		action string
		err    error
		status int
	}{
		{"bad id", "nope", ActionConfirm, nil, http.StatusBadRequest},
		{"unknown action", uuid.NewString(), "archive", nil, http.StatusBadRequest},
		{"not found", uuid.NewString(), ActionComplete, appointments.ErrAppointmentNotFound, http.StatusNotFound},
		{"invalid transition", uuid.NewString(), ActionComplete,
			fmt.Errorf("%w: cancelled -> completed", appointments.ErrInvalidTransition), http.StatusConflict},
		{"slot taken", uuid.NewString(), ActionConfirm, appointments.ErrSlotAlreadyTaken, http.StatusConflict},
		{"internal", uuid.NewString(), ActionCancel, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &recordingService{err: tt.err}
			assert.Equal(t, tt.status, send(NewHandler(svc, nopLogger{}), tt.id, tt.action).Code)
		})
	}
}
