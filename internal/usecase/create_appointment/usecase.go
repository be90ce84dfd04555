package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/appointment"
)

// UseCase use case для создания записи клиентом
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	txManager       TransactionManager
	metrics         MetricsRecorder
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	metrics MetricsRecorder,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{Location: location},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Предварительная проверка отсекает занятый слот сразу, окончательное решение
// принимает уникальный индекс хранилища при вставке.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", domain.ErrValidation)
	}

	// 1. Нормализация и валидация входных данных
	normalizeRequest(req)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		uc.record(resultRejected)
		return nil, err
	}

	date := req.Date.Format(domain.DateFormat)
	uc.logger.Info("CreateAppointment: date=%s, time=%s", date, req.StartTime)

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем расписание
	schedule, err := uc.scheduleRepo.Get(ctx)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get schedule: %v", err)
		uc.record(resultError)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrStoreUnavailable, err)
	}

	// 4. Проверяем день, сетку слотов и время
	if !schedule.IsWorkingDay(req.Date) {
		uc.logger.Warn("CreateAppointment: %s is not a working day", date)
		uc.record(resultRejected)
		return nil, ErrNotWorkingDay
	}

	endTime, ok := slotEnd(schedule, req.StartTime)
	if !ok {
		uc.logger.Warn("CreateAppointment: %s is not a slot start", req.StartTime)
		uc.record(resultRejected)
		return nil, ErrInvalidTimeSlot
	}

	if isSlotInPast(req.Date, req.StartTime, now) {
		uc.logger.Warn("CreateAppointment: slot %s %s is in the past", date, req.StartTime)
		uc.record(resultRejected)
		return nil, ErrSlotInPast
	}

	var result *domain.Appointment

	// 5. Проверка и вставка в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		taken, err := uc.appointmentRepo.ExistsActiveAt(txCtx, req.Date, req.StartTime)
		if err != nil {
			return fmt.Errorf("%w: failed to check slot: %v", ErrStoreUnavailable, err)
		}
		if taken {
			return ErrSlotAlreadyTaken
		}

		appt := &domain.Appointment{
			Date:        domain.DateOnly(req.Date),
			StartTime:   req.StartTime,
			EndTime:     endTime,
			ClientName:  req.ClientName,
			ClientPhone: req.ClientPhone,
			ClientEmail: req.ClientEmail,
			Notes:       req.Notes,
			Status:      domain.StatusConfirmed,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				return ErrSlotAlreadyTaken
			}
			return fmt.Errorf("%w: failed to create appointment: %v", ErrStoreUnavailable, err)
		}

		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotAlreadyTaken):
			uc.logger.Warn("CreateAppointment: slot %s %s already taken", date, req.StartTime)
			uc.record(resultConflict)
			return nil, ErrSlotAlreadyTaken
		case errors.Is(err, ErrStoreUnavailable):
			uc.logger.Error("CreateAppointment: %v", err)
			uc.record(resultError)
			return nil, err
		default:
			uc.logger.Error("CreateAppointment: transaction failed: %v", err)
			uc.record(resultError)
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	uc.logger.Info("CreateAppointment: created appointment id=%s for %s %s", result.ID, date, result.StartTime)
	uc.record(resultCreated)

	return toResponse(result), nil
}

func (uc *UseCase) record(result string) {
	if uc.metrics != nil {
		uc.metrics.RecordBooking(result)
	}
}
