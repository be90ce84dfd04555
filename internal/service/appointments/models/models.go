package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// ListByDateRequest запрос на получение записей за день
type ListByDateRequest struct {
	Date             time.Time `json:"date"`
	IncludeCancelled bool      `json:"includeCancelled,omitempty"`
	Status           *string   `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListByDateRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		Date:             r.Date,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateDetailsRequest правка данных клиента администратором.
// nil поле не меняется, пустая строка очищает email и заметки.
type UpdateDetailsRequest struct {
	ClientName  *string `json:"clientName,omitempty"`
	ClientPhone *string `json:"clientPhone,omitempty"`
	ClientEmail *string `json:"clientEmail,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// ToDomain конвертирует request в domain модель
func (r *UpdateDetailsRequest) ToDomain() domain.AppointmentDetailsUpdate {
	return domain.AppointmentDetailsUpdate{
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		ClientEmail: r.ClientEmail,
		Notes:       r.Notes,
	}
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`      // "2025-03-10"
	StartTime   string  `json:"startTime"` // "10:00"
	EndTime     string  `json:"endTime"`
	ClientName  string  `json:"clientName"`
	ClientPhone string  `json:"clientPhone"`
	ClientEmail *string `json:"clientEmail,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	Status      string  `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей за день
type AppointmentListResponse struct {
	Date         string                `json:"date"`
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:          a.ID.String(),
		Date:        a.Date.Format(domain.DateFormat),
		StartTime:   a.StartTime.String(),
		EndTime:     a.EndTime.String(),
		ClientName:  a.ClientName,
		ClientPhone: a.ClientPhone,
		ClientEmail: a.ClientEmail,
		Notes:       a.Notes,
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(date time.Time, appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Date:         date.Format(domain.DateFormat),
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, appt := range appointments {
		if apptResp := FromDomainAppointment(appt); apptResp != nil {
			resp.Appointments = append(resp.Appointments, *apptResp)
		}
	}

	return resp
}

// ToDomainStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
