package stream_day_appointments

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments/models"
)

// Имена SSE событий
const (
	EventSnapshot = "snapshot"
	EventCreated  = "appointment_created"
)

func snapshotPayload(date time.Time, items []domain.Appointment) *models.AppointmentListResponse {
	list := make([]*domain.Appointment, len(items))
	for i := range items {
		list[i] = &items[i]
	}
	return models.FromDomainAppointmentList(date, list)
}

func writeEvent(w io.Writer, event string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event, err)
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
	return err
}

func writeKeepAlive(w io.Writer) error {
	_, err := io.WriteString(w, ": keepalive\n\n")
	return err
}
