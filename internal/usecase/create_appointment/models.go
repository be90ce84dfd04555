package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	Date        time.Time        // Дата записи (без времени)
	StartTime   types.TimeString // Начало слота, например "10:00"
	ClientName  string
	ClientPhone string
	ClientEmail *string // опционально
	Notes       *string // опционально
}

// Response модель ответа с созданной записью
type Response struct {
	ID          uuid.UUID
	Date        time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	ClientName  string
	ClientPhone string
	ClientEmail *string
	Notes       *string
	Status      domain.AppointmentStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func toResponse(appt *domain.Appointment) *Response {
	return &Response{
		ID:          appt.ID,
		Date:        appt.Date,
		StartTime:   appt.StartTime,
		EndTime:     appt.EndTime,
		ClientName:  appt.ClientName,
		ClientPhone: appt.ClientPhone,
		ClientEmail: appt.ClientEmail,
		Notes:       appt.Notes,
		Status:      appt.Status,
		CreatedAt:   appt.CreatedAt,
		UpdatedAt:   appt.UpdatedAt,
	}
}
