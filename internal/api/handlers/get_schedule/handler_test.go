package get_schedule

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/service/schedule"
	"github.com/m04kA/SMC-BarberBooking/internal/service/schedule/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	resp *models.ScheduleResponse
	err  error
}

func (s stubService) Get(context.Context) (*models.ScheduleResponse, error) {
	return s.resp, s.err
}

func TestHandle(t *testing.T) {
	h := NewHandler(stubService{resp: &models.ScheduleResponse{
		ID:                  1,
		ShopName:            "Barbershop",
		SlotDurationMinutes: 30,
		MorningStart:        "09:00",
		WorkingDays:         []int{1, 2, 3},
	}}, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/schedule", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.ScheduleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Barbershop", body.ShopName)
	assert.Equal(t, []int{1, 2, 3}, body.WorkingDays)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", schedule.ErrScheduleNotFound, http.StatusNotFound},
		{"internal", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(stubService{err: tt.err}, nopLogger{}).
				Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/schedule", nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
