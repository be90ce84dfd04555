package notify

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	monday  = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	tuesday = time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC)
)

func eventOn(date time.Time, status domain.AppointmentStatus) domain.AppointmentEvent {
	return domain.AppointmentEvent{
		Type: domain.ChangeInsert,
		Appointment: domain.Appointment{
			ID:        uuid.New(),
			Date:      date,
			StartTime: "10:00",
			Status:    status,
		},
	}
}

func TestDecodeEvent(t *testing.T) {
	raw := `{"op":"UPDATE","record":{"id":"7f1b5e0e-8a57-4c1e-9d2b-2f8d3f6b9a11",` +
		`"appointment_date":"2025-03-10","start_time":"10:00:00","end_time":"10:30:00",` +
		`"client_name":"Анна","client_phone":"+79001234567","client_email":null,"notes":"окрашивание",` +
		`"status":"no_show","created_at":"2025-03-09T12:00:00.123456+00:00","updated_at":"2025-03-10T10:40:00+00:00"}}`

	evt, err := DecodeEvent(raw)
	require.NoError(t, err)

	assert.Equal(t, domain.ChangeUpdate, evt.Type)
	assert.Equal(t, "7f1b5e0e-8a57-4c1e-9d2b-2f8d3f6b9a11", evt.Appointment.ID.String())
	assert.True(t, evt.Appointment.IsOn(monday))
	assert.Equal(t, types.TimeString("10:00"), evt.Appointment.StartTime)
	assert.Equal(t, types.TimeString("10:30"), evt.Appointment.EndTime)
	assert.Equal(t, domain.StatusNoShow, evt.Appointment.Status)
	assert.Nil(t, evt.Appointment.ClientEmail)
	require.NotNil(t, evt.Appointment.Notes)
	assert.Equal(t, "окрашивание", *evt.Appointment.Notes)
}

func TestDecodeEvent_Invalid(t *testing.T) {
	for _, raw := range []string{
		`not json`,
		`{"op":"TRUNCATE","record":{}}`,
		`{"op":"INSERT","record":{"id":"7f1b5e0e-8a57-4c1e-9d2b-2f8d3f6b9a11","appointment_date":"10/03/2025","start_time":"10:00:00"}}`,
	} {
		_, err := DecodeEvent(raw)
		assert.ErrorIs(t, err, ErrInvalidPayload, raw)
	}
}

func TestHub_DeliversOnlySameDate(t *testing.T) {
	hub := NewHub(4, nopLogger{})
	mondaySub := hub.Subscribe(monday.Add(15 * time.Hour))
	defer mondaySub.Close()
	tuesdaySub := hub.Subscribe(tuesday)
	defer tuesdaySub.Close()

	evt := eventOn(monday, domain.StatusConfirmed)
	hub.Publish(evt)

	select {
	case got := <-mondaySub.Events():
		assert.Equal(t, evt.Appointment.ID, got.Appointment.ID)
	default:
		t.Fatal("monday subscriber did not receive event")
	}

	select {
	case <-tuesdaySub.Events():
		t.Fatal("tuesday subscriber received monday event")
	default:
	}
}

func TestHub_FullQueueRequestsResync(t *testing.T) {
	hub := NewHub(1, nopLogger{})
	sub := hub.Subscribe(monday)
	defer sub.Close()

	hub.Publish(eventOn(monday, domain.StatusConfirmed))
	hub.Publish(eventOn(monday, domain.StatusConfirmed)) // не помещается

	assert.Len(t, sub.Events(), 1)
	select {
	case <-sub.Resync():
	default:
		t.Fatal("expected resync signal")
	}
}

func TestSubscription_CloseIsIdempotent(t *testing.T) {
	hub := NewHub(1, nopLogger{})
	sub := hub.Subscribe(monday)
	assert.Equal(t, 1, hub.Count())

	sub.Close()
	sub.Close()
	assert.Equal(t, 0, hub.Count())

	_, ok := <-sub.Events()
	assert.False(t, ok, "events channel is closed")

	// Публикация после отписки не паникует
	hub.Publish(eventOn(monday, domain.StatusConfirmed))
}

func TestListener_HandleNilNotificationResyncs(t *testing.T) {
	hub := NewHub(1, nopLogger{})
	sub := hub.Subscribe(monday)
	defer sub.Close()

	l := &Listener{hub: hub, logger: nopLogger{}}
	l.handle(nil)

	select {
	case <-sub.Resync():
	default:
		t.Fatal("expected resync after reconnect")
	}

	l.handle(&pq.Notification{Channel: "appointment_changes", Extra: "garbage"})
	assert.Len(t, sub.Events(), 0)
}
