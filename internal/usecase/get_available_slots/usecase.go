package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// UseCase use case для получения слотов на дату
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// location задаёт часовой пояс мастерской для определения прошедших слотов.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		timeProvider:    &RealTimeProvider{Location: location},
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := req.Date.Format(domain.DateFormat)
	uc.logger.Info("GetAvailableSlots: date=%s", date)

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем расписание
	schedule, err := uc.scheduleRepo.Get(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrStoreUnavailable, err)
	}

	response := &Response{
		Date:                req.Date,
		IsWorkingDay:        schedule.IsWorkingDay(req.Date),
		SlotDurationMinutes: schedule.SlotDurationMinutes,
		MorningSlots:        []domain.TimeSlot{},
		AfternoonSlots:      []domain.TimeSlot{},
	}

	// 4. В нерабочий день слотов нет
	if !response.IsWorkingDay {
		uc.logger.Info("GetAvailableSlots: %s is not a working day", date)
		return response, nil
	}

	// 5. Получаем активные записи на дату
	appointments, err := uc.appointmentRepo.ListByDate(ctx, domain.AppointmentsFilter{Date: req.Date})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list appointments for %s: %v", date, err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrStoreUnavailable, err)
	}

	// 6. Генерируем слоты по каждому окну
	response.MorningSlots = GenerateSlots(
		schedule.MorningStart,
		schedule.MorningEnd,
		schedule.SlotDurationMinutes,
		appointments,
		req.Date,
		now,
	)
	response.AfternoonSlots = GenerateSlots(
		schedule.AfternoonStart,
		schedule.AfternoonEnd,
		schedule.SlotDurationMinutes,
		appointments,
		req.Date,
		now,
	)

	uc.logger.Info("GetAvailableSlots: generated %d morning and %d afternoon slots for %s, %d available",
		len(response.MorningSlots), len(response.AfternoonSlots), date, response.AvailableCount())

	return response, nil
}
