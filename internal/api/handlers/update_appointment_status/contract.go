package update_appointment_status

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments/models"
)

type AppointmentService interface {
	Confirm(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error)
	Complete(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error)
	MarkNoShow(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error)
	Cancel(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
