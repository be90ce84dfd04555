package get_appointment

import (
	"context"
	"encoding/json"
	"errors"
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

type serviceFunc func(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error)

func (f serviceFunc) GetByID(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error) {
	return f(ctx, id)
}

func get(h *Handler, id string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/appointments/"+id, nil)
	req = mux.SetURLVars(req, map[string]string{"appointmentId": id})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	id := uuid.New()
	h := NewHandler(serviceFunc(func(_ context.Context, got uuid.UUID) (*models.AppointmentResponse, error) {
		assert.Equal(t, id, got)
		return &models.AppointmentResponse{ID: got.String(), Status: "confirmed"}, nil
	}), nopLogger{})

	rec := get(h, id.String())
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, id.String(), body.ID)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		err    error
		status int
	}{
		{"bad id", "42", nil, http.StatusBadRequest},
		{"not found", uuid.NewString(), appointments.ErrAppointmentNotFound, http.StatusNotFound},
		{"internal", uuid.NewString(), errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(serviceFunc(func(context.Context, uuid.UUID) (*models.AppointmentResponse, error) {
				return nil, tt.err
			}), nopLogger{})
			assert.Equal(t, tt.status, get(h, tt.id).Code)
		})
	}
}
