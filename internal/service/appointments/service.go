package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments/models"
)

// Имена полей в ошибках валидации UpdateDetails
const (
	FieldClientName  = "clientName"
	FieldClientPhone = "clientPhone"
	FieldClientEmail = "clientEmail"
	FieldNotes       = "notes"
)

// Service сервис администрирования записей
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// ListByDate получает записи за день, отсортированные по времени начала
func (s *Service) ListByDate(ctx context.Context, req *models.ListByDateRequest) (*models.AppointmentListResponse, error) {
	date := req.Date.Format(domain.DateFormat)
	s.logger.Info("ListByDate: fetching appointments for date=%s, includeCancelled=%t", date, req.IncludeCancelled)

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListByDate: invalid filter for date=%s: %v", date, err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.ListByDate(ctx, filter)
	if err != nil {
		s.logger.Error("ListByDate: repository error for date=%s: %v", date, err)
		return nil, fmt.Errorf("%w: ListByDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByDate: fetched %d appointments for date=%s", len(appointments), date)
	return models.FromDomainAppointmentList(req.Date, appointments), nil
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error) {
	appt, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainAppointment(appt), nil
}

// Confirm переводит запись в статус confirmed
func (s *Service) Confirm(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error) {
	return s.transition(ctx, id, domain.StatusConfirmed)
}

// Complete отмечает, что клиент обслужен
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error) {
	return s.transition(ctx, id, domain.StatusCompleted)
}

// MarkNoShow отмечает, что клиент не пришёл
func (s *Service) MarkNoShow(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error) {
	return s.transition(ctx, id, domain.StatusNoShow)
}

// Cancel отменяет запись и освобождает слот
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error) {
	return s.transition(ctx, id, domain.StatusCancelled)
}

// UpdateDetails обновляет данные клиента и заметки
func (s *Service) UpdateDetails(ctx context.Context, id uuid.UUID, req *models.UpdateDetailsRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateDetails: updating appointment id=%s", id)

	upd := req.ToDomain()
	if upd.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if err := validateDetails(&upd); err != nil {
		s.logger.Warn("UpdateDetails: validation failed for appointment id=%s: %v", id, err)
		return nil, err
	}

	appt, err := s.appointmentRepo.UpdateDetails(ctx, id, upd)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateDetails: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateDetails: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateDetails - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateDetails: updated appointment id=%s", id)
	return models.FromDomainAppointment(appt), nil
}

// transition меняет статус записи.
// Повторное применение того же статуса ничего не пишет и возвращает текущее состояние.
func (s *Service) transition(ctx context.Context, id uuid.UUID, next domain.AppointmentStatus) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: appointment id=%s -> %s", id, next)

	appt, err := s.get(ctx, "UpdateStatus", id)
	if err != nil {
		return nil, err
	}

	if appt.Status == next {
		s.logger.Info("UpdateStatus: appointment id=%s already %s", id, next)
		return models.FromDomainAppointment(appt), nil
	}

	if !appt.Status.CanTransitionTo(next) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for appointment id=%s", appt.Status, next, id)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, next)
	}

	updated, err := s.appointmentRepo.UpdateStatus(ctx, id, next)
	if err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
			s.logger.Warn("UpdateStatus: appointment id=%s not found during update", id)
			return nil, ErrAppointmentNotFound
		case errors.Is(err, appointmentRepo.ErrSlotTaken):
			s.logger.Warn("UpdateStatus: slot of appointment id=%s is taken by another appointment", id)
			return nil, ErrSlotAlreadyTaken
		default:
			s.logger.Error("UpdateStatus: repository error for appointment id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("UpdateStatus: appointment id=%s is now %s", id, updated.Status)
	return models.FromDomainAppointment(updated), nil
}

func (s *Service) get(ctx context.Context, op string, id uuid.UUID) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%s not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appt, nil
}

// validateDetails обрезает пробелы и проверяет изменяемые поля
func validateDetails(upd *domain.AppointmentDetailsUpdate) error {
	var errs domain.ValidationErrors

	if upd.ClientName != nil {
		name := strings.TrimSpace(*upd.ClientName)
		upd.ClientName = &name
		if name == "" {
			errs.Add(FieldClientName, "имя обязательно")
		} else if len([]rune(name)) > domain.MaxClientNameLength {
			errs.Add(FieldClientName, "имя слишком длинное")
		}
	}

	if upd.ClientPhone != nil {
		phone := strings.TrimSpace(*upd.ClientPhone)
		upd.ClientPhone = &phone
		if domain.CountDigits(phone) < domain.MinPhoneDigits {
			errs.Add(FieldClientPhone, "телефон должен содержать минимум 8 цифр")
		}
	}

	if upd.ClientEmail != nil {
		email := strings.TrimSpace(*upd.ClientEmail)
		upd.ClientEmail = &email
		if email != "" && !domain.IsValidEmail(email) {
			errs.Add(FieldClientEmail, "некорректный email")
		}
	}

	if upd.Notes != nil {
		notes := strings.TrimSpace(*upd.Notes)
		upd.Notes = &notes
		if len([]rune(notes)) > domain.MaxNotesLength {
			errs.Add(FieldNotes, "комментарий слишком длинный")
		}
	}

	return errs.Err()
}
