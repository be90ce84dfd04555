package create_appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	createAppointment "github.com/m04kA/SMC-BarberBooking/internal/usecase/create_appointment"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type useCaseFunc func(ctx context.Context, req *createAppointment.Request) (*createAppointment.Response, error)

func (f useCaseFunc) Execute(ctx context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	return f(ctx, req)
}

const validBody = `{"date":"2025-03-10","startTime":"10:00","clientName":"Ivan","clientPhone":"+79001234567"}`

func post(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body)))
	return rec
}

func TestHandle_Created(t *testing.T) {
	id := uuid.New()
	h := NewHandler(useCaseFunc(func(_ context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
		assert.Equal(t, "10:00", req.StartTime.String())
		assert.Equal(t, "Ivan", req.ClientName)
		return &createAppointment.Response{
			ID:          id,
			Date:        req.Date,
			StartTime:   req.StartTime,
			EndTime:     "10:30",
			ClientName:  req.ClientName,
			ClientPhone: req.ClientPhone,
			Status:      domain.StatusConfirmed,
			CreatedAt:   time.Now(),
		}, nil
	}), nopLogger{})

	rec := post(h, validBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body CreateAppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, id.String(), body.ID)
	assert.Equal(t, "2025-03-10", body.Date)
	assert.Equal(t, "10:30", body.EndTime)
	assert.Equal(t, "confirmed", body.Status)
}

func TestHandle_ParseErrors(t *testing.T) {
	h := NewHandler(useCaseFunc(func(context.Context, *createAppointment.Request) (*createAppointment.Response, error) {
		t.Fatal("use case must not be called")
		return nil, nil
	}), nopLogger{})

	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"empty body", "", msgInvalidRequestBody},
		{"bad date", `{"date":"10.03.2025","startTime":"10:00"}`, msgInvalidDate},
		{"bad time", `{"date":"2025-03-10","startTime":"25:99"}`, msgInvalidTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(h, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.msg, body.Error)
		})
	}
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"slot taken", createAppointment.ErrSlotAlreadyTaken, http.StatusConflict},
		{"not working day", createAppointment.ErrNotWorkingDay, http.StatusBadRequest},
		{"off grid", createAppointment.ErrInvalidTimeSlot, http.StatusBadRequest},
		{"past", createAppointment.ErrSlotInPast, http.StatusBadRequest},
		{"store", fmt.Errorf("%w: boom", createAppointment.ErrStoreUnavailable), http.StatusServiceUnavailable},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(useCaseFunc(func(context.Context, *createAppointment.Request) (*createAppointment.Response, error) {
				return nil, tt.err
			}), nopLogger{})

			assert.Equal(t, tt.status, post(h, validBody).Code)
		})
	}
}

func TestHandle_ValidationFields(t *testing.T) {
	h := NewHandler(useCaseFunc(func(context.Context, *createAppointment.Request) (*createAppointment.Response, error) {
		return nil, domain.ValidationErrors{
			{Field: "clientName", Message: "обязательное поле"},
			{Field: "clientPhone", Message: "обязательное поле"},
		}
	}), nopLogger{})

	rec := post(h, validBody)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Fields, 2)
	assert.Equal(t, "clientName", body.Fields[0].Field)
}
