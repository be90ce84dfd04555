package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_available_slots"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type useCaseFunc func(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)

func (f useCaseFunc) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	return f(ctx, req)
}

func TestHandle(t *testing.T) {
	h := NewHandler(useCaseFunc(func(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
		assert.Equal(t, "2025-03-10", req.Date.Format(domain.DateFormat))
		return &getAvailableSlots.Response{
			Date:                req.Date,
			IsWorkingDay:        true,
			SlotDurationMinutes: 60,
			MorningSlots: []domain.TimeSlot{
				{Start: "09:00", End: "10:00", IsAvailable: true},
				{Start: "10:00", End: "11:00", IsAvailable: false},
			},
			AfternoonSlots: []domain.TimeSlot{},
		}, nil
	}), nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/available-slots?date=2025-03-10", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.AvailableCount)
	require.Len(t, body.MorningSlots, 2)
	assert.Equal(t, "10:00", body.MorningSlots[1].Start)
	assert.NotNil(t, body.AfternoonSlots)
}

func TestHandle_Errors(t *testing.T) {
	storeDown := useCaseFunc(func(context.Context, *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
		return nil, getAvailableSlots.ErrStoreUnavailable
	})

	tests := []struct {
		name   string
		url    string
		status int
	}{
		{"missing date", "/api/v1/available-slots", http.StatusBadRequest},
		{"bad date", "/api/v1/available-slots?date=10-03-2025", http.StatusBadRequest},
		{"store down", "/api/v1/available-slots?date=2025-03-10", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(storeDown, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
