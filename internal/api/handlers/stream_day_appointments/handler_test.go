package stream_day_appointments

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/notify"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type memoryLoader struct {
	mu    sync.Mutex
	items []*domain.Appointment
	err   error
}

func (l *memoryLoader) ListByDate(_ context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	out := make([]*domain.Appointment, len(l.items))
	copy(out, l.items)
	return out, nil
}

func (l *memoryLoader) set(items ...*domain.Appointment) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = items
}

type countingMetrics struct {
	mu     sync.Mutex
	opened int
	closed int
}

func (m *countingMetrics) StreamOpened() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opened++
}

func (m *countingMetrics) StreamClosed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed++
}

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func appointment(start types.TimeString, status domain.AppointmentStatus) *domain.Appointment {
	end, _ := start.AddMinutes(30)
	return &domain.Appointment{
		ID:          uuid.New(),
		Date:        day,
		StartTime:   start,
		EndTime:     end,
		ClientName:  "Client " + string(start),
		ClientPhone: "+79001234567",
		Status:      status,
		CreatedAt:   time.Now(),
	}
}

type sseEvent struct {
	name string
	data string
}

// readEvent читает следующее событие, пропуская keepalive комментарии
func readEvent(t *testing.T, r *bufio.Reader) sseEvent {
	t.Helper()

	var evt sseEvent
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")

		switch {
		case line == "":
			if evt.name != "" {
				return evt
			}
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "event: "):
			evt.name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			evt.data = strings.TrimPrefix(line, "data: ")
		}
	}
}

func decodeSnapshot(t *testing.T, evt sseEvent) models.AppointmentListResponse {
	t.Helper()
	require.Equal(t, EventSnapshot, evt.name)

	var list models.AppointmentListResponse
	require.NoError(t, json.Unmarshal([]byte(evt.data), &list))
	return list
}

func TestHandle_Stream(t *testing.T) {
	first := appointment("10:00", domain.StatusConfirmed)
	loader := &memoryLoader{}
	loader.set(first)

	hub := notify.NewHub(8, nopLogger{})
	metrics := &countingMetrics{}
	h := NewHandler(hub, loader, metrics, time.Hour, nopLogger{})

	srv := httptest.NewServer(http.HandlerFunc(h.Handle))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "?date=2025-03-10")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)

	// Начальный снимок
	snap := decodeSnapshot(t, readEvent(t, reader))
	assert.Equal(t, "2025-03-10", snap.Date)
	require.Len(t, snap.Appointments, 1)
	assert.Equal(t, first.ID.String(), snap.Appointments[0].ID)

	// Новая запись раньше существующей
	second := appointment("09:00", domain.StatusConfirmed)
	hub.Publish(domain.AppointmentEvent{Type: domain.ChangeInsert, Appointment: *second})

	created := readEvent(t, reader)
	require.Equal(t, EventCreated, created.name)
	var createdBody models.AppointmentResponse
	require.NoError(t, json.Unmarshal([]byte(created.data), &createdBody))
	assert.Equal(t, second.ID.String(), createdBody.ID)

	snap = decodeSnapshot(t, readEvent(t, reader))
	require.Len(t, snap.Appointments, 2)
	assert.Equal(t, "09:00", snap.Appointments[0].StartTime)
	assert.Equal(t, "10:00", snap.Appointments[1].StartTime)

	// Событие другой даты не приходит, отмена убирает запись
	other := appointment("11:00", domain.StatusConfirmed)
	other.Date = day.AddDate(0, 0, 1)
	hub.Publish(domain.AppointmentEvent{Type: domain.ChangeInsert, Appointment: *other})

	cancelled := *first
	cancelled.Status = domain.StatusCancelled
	hub.Publish(domain.AppointmentEvent{Type: domain.ChangeUpdate, Appointment: cancelled})

	snap = decodeSnapshot(t, readEvent(t, reader))
	require.Len(t, snap.Appointments, 1)
	assert.Equal(t, second.ID.String(), snap.Appointments[0].ID)

	// Resync перечитывает день из хранилища
	third := appointment("15:00", domain.StatusCompleted)
	loader.set(second, third)
	hub.Resync()

	snap = decodeSnapshot(t, readEvent(t, reader))
	require.Len(t, snap.Appointments, 2)
	assert.Equal(t, "completed", snap.Appointments[1].Status)

	metrics.mu.Lock()
	assert.Equal(t, 1, metrics.opened)
	metrics.mu.Unlock()
}

func TestHandle_KeepAlive(t *testing.T) {
	h := NewHandler(notify.NewHub(1, nopLogger{}), &memoryLoader{}, nil, 20*time.Millisecond, nopLogger{})

	srv := httptest.NewServer(http.HandlerFunc(h.Handle))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "?date=2025-03-10")
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	snap := decodeSnapshot(t, readEvent(t, reader))
	assert.Empty(t, snap.Appointments)

	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, ": keepalive\n", line)
}

func TestHandle_BadRequest(t *testing.T) {
	h := NewHandler(notify.NewHub(1, nopLogger{}), &memoryLoader{}, nil, 0, nopLogger{})

	for _, url := range []string{"/stream", "/stream?date=03/10/2025"} {
		rec := httptest.NewRecorder()
		h.Handle(rec, httptest.NewRequest(http.MethodGet, url, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestHandle_LoadFailure(t *testing.T) {
	hub := notify.NewHub(1, nopLogger{})
	h := NewHandler(hub, &memoryLoader{err: errors.New("db down")}, nil, 0, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/stream?date=2025-03-10", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 0, hub.Count())
}
