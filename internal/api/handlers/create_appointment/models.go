package create_appointment

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	createAppointment "github.com/m04kA/SMC-BarberBooking/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	Date        string  `json:"date"`      // "2025-03-10"
	StartTime   string  `json:"startTime"` // "10:00"
	ClientName  string  `json:"clientName"`
	ClientPhone string  `json:"clientPhone"`
	ClientEmail *string `json:"clientEmail,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// CreateAppointmentResponse HTTP response model
type CreateAppointmentResponse struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	ClientName  string    `json:"clientName"`
	ClientPhone string    `json:"clientPhone"`
	ClientEmail *string   `json:"clientEmail,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

var (
	errParseDate = errors.New("parse date")
	errParseTime = errors.New("parse start time")
)

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errParseDate, err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errParseTime, err)
	}

	return &createAppointment.Request{
		Date:        date,
		StartTime:   startTime,
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		ClientEmail: r.ClientEmail,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *CreateAppointmentResponse {
	return &CreateAppointmentResponse{
		ID:          resp.ID.String(),
		Date:        resp.Date.Format(domain.DateFormat),
		StartTime:   resp.StartTime.String(),
		EndTime:     resp.EndTime.String(),
		ClientName:  resp.ClientName,
		ClientPhone: resp.ClientPhone,
		ClientEmail: resp.ClientEmail,
		Notes:       resp.Notes,
		Status:      string(resp.Status),
		CreatedAt:   resp.CreatedAt,
	}
}
