package update_schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/schedule"
	"github.com/m04kA/SMC-BarberBooking/internal/service/schedule/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type serviceFunc func(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error)

func (f serviceFunc) Update(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	return f(ctx, req)
}

func put(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPut, "/api/v1/admin/schedule", strings.NewReader(body)))
	return rec
}

func TestHandle(t *testing.T) {
	h := NewHandler(serviceFunc(func(_ context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
		require.NotNil(t, req.SlotDurationMinutes)
		assert.Equal(t, 45, *req.SlotDurationMinutes)
		assert.Equal(t, []int{1, 2}, req.WorkingDays)
		assert.Nil(t, req.ShopName)
		return &models.ScheduleResponse{SlotDurationMinutes: 45, WorkingDays: []int{1, 2}}, nil
	}), nopLogger{})

	rec := put(h, `{"slotDurationMinutes":45,"workingDays":[1,2]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.ScheduleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 45, body.SlotDurationMinutes)
}

func TestHandle_ValidationErrors(t *testing.T) {
	h := NewHandler(serviceFunc(func(context.Context, *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
		return nil, domain.ValidationErrors{{Field: "morningEnd", Message: "должно быть позже начала"}}
	}), nopLogger{})

	rec := put(h, `{"morningEnd":"08:00"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Fields, 1)
	assert.Equal(t, "morningEnd", body.Fields[0].Field)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"bad json", `{`, nil, http.StatusBadRequest},
		{"empty update", `{}`, fmt.Errorf("%w: nothing to update", schedule.ErrInvalidInput), http.StatusBadRequest},
		{"not found", `{"shopName":"X"}`, schedule.ErrScheduleNotFound, http.StatusNotFound},
		{"internal", `{"shopName":"X"}`, schedule.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(serviceFunc(func(context.Context, *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
				return nil, tt.err
			}), nopLogger{})
			assert.Equal(t, tt.status, put(h, tt.body).Code)
		})
	}
}
