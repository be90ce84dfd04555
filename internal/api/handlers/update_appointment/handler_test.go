package update_appointment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type serviceFunc func(ctx context.Context, id uuid.UUID, req *models.UpdateDetailsRequest) (*models.AppointmentResponse, error)

func (f serviceFunc) UpdateDetails(ctx context.Context, id uuid.UUID, req *models.UpdateDetailsRequest) (*models.AppointmentResponse, error) {
	return f(ctx, id, req)
}

func patch(h *Handler, id, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/appointments/"+id, strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"appointmentId": id})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	id := uuid.New()
	h := NewHandler(serviceFunc(func(_ context.Context, got uuid.UUID, req *models.UpdateDetailsRequest) (*models.AppointmentResponse, error) {
		assert.Equal(t, id, got)
		require.NotNil(t, req.Notes)
		assert.Equal(t, "beard trim", *req.Notes)
		assert.Nil(t, req.ClientName)
		return &models.AppointmentResponse{ID: got.String(), Notes: req.Notes}, nil
	}), nopLogger{})

	rec := patch(h, id.String(), `{"notes":"beard trim"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		body   string
		err    error
		status int
	}{
		{"bad id", "x", `{"notes":"n"}`, nil, http.StatusBadRequest},
		{"bad body", uuid.NewString(), `[`, nil, http.StatusBadRequest},
		{"validation", uuid.NewString(), `{"clientPhone":"1"}`,
			domain.ValidationErrors{{Field: "clientPhone", Message: "too short"}}, http.StatusBadRequest},
		{"nothing to update", uuid.NewString(), `{}`,
			fmt.Errorf("%w: nothing to update", appointments.ErrInvalidInput), http.StatusBadRequest},
		{"not found", uuid.NewString(), `{"notes":"n"}`, appointments.ErrAppointmentNotFound, http.StatusNotFound},
		{"internal", uuid.NewString(), `{"notes":"n"}`, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(serviceFunc(func(context.Context, uuid.UUID, *models.UpdateDetailsRequest) (*models.AppointmentResponse, error) {
				return nil, tt.err
			}), nopLogger{})
			assert.Equal(t, tt.status, patch(h, tt.id, tt.body).Code)
		})
	}
}
