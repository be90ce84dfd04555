package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// payload формат, который отправляет триггер notify_appointment_change
type payload struct {
	Op     domain.ChangeType `json:"op"`
	Record record            `json:"record"`
}

// record строка appointments в виде row_to_json
type record struct {
	ID              uuid.UUID `json:"id"`
	AppointmentDate string    `json:"appointment_date"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	ClientName      string    `json:"client_name"`
	ClientPhone     string    `json:"client_phone"`
	ClientEmail     *string   `json:"client_email"`
	Notes           *string   `json:"notes"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DecodeEvent разбирает полезную нагрузку pg_notify в событие записи
func DecodeEvent(raw string) (domain.AppointmentEvent, error) {
	var p payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return domain.AppointmentEvent{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	switch p.Op {
	case domain.ChangeInsert, domain.ChangeUpdate, domain.ChangeDelete:
	default:
		return domain.AppointmentEvent{}, fmt.Errorf("%w: unknown op %q", ErrInvalidPayload, p.Op)
	}

	date, err := time.Parse(domain.DateFormat, p.Record.AppointmentDate)
	if err != nil {
		return domain.AppointmentEvent{}, fmt.Errorf("%w: appointment_date: %v", ErrInvalidPayload, err)
	}

	appt := domain.Appointment{
		ID:          p.Record.ID,
		Date:        date,
		ClientName:  p.Record.ClientName,
		ClientPhone: p.Record.ClientPhone,
		ClientEmail: p.Record.ClientEmail,
		Notes:       p.Record.Notes,
		Status:      domain.AppointmentStatus(p.Record.Status),
		CreatedAt:   p.Record.CreatedAt,
		UpdatedAt:   p.Record.UpdatedAt,
	}

	// Для DELETE гарантированы только id и дата
	if p.Op != domain.ChangeDelete || p.Record.StartTime != "" {
		if appt.StartTime, err = types.NewTimeStringFromString(p.Record.StartTime); err != nil {
			return domain.AppointmentEvent{}, fmt.Errorf("%w: start_time: %v", ErrInvalidPayload, err)
		}
	}
	if p.Record.EndTime != "" {
		if appt.EndTime, err = types.NewTimeStringFromString(p.Record.EndTime); err != nil {
			return domain.AppointmentEvent{}, fmt.Errorf("%w: end_time: %v", ErrInvalidPayload, err)
		}
	}

	return domain.AppointmentEvent{Type: p.Op, Appointment: appt}, nil
}
