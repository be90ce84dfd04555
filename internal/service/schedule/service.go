package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-BarberBooking/internal/service/schedule/models"
)

// Service сервис настроек мастерской
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(scheduleRepo ScheduleRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Get получает текущие настройки мастерской
// Публичный метод - доступен всем
func (s *Service) Get(ctx context.Context) (*models.ScheduleResponse, error) {
	schedule, err := s.scheduleRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("Get: schedule not found")
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(schedule), nil
}

// Update частично обновляет настройки.
// Сначала проверяются переданные поля, затем итоговое расписание целиком.
// Ошибки возвращаются по всем полям в domain.ValidationErrors, и тогда в хранилище ничего не пишется.
func (s *Service) Update(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Update: updating shop schedule")

	if req == nil || req.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	// Поля, не зависящие от текущих настроек, проверяются до обращения к хранилищу
	if verrs := req.Validate(); len(verrs) > 0 {
		s.logger.Warn("Update: validation failed: %v", verrs)
		return nil, verrs
	}

	var result *domain.ShopSchedule

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.scheduleRepo.Get(txCtx)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				return ErrScheduleNotFound
			}
			return fmt.Errorf("%w: Update - get schedule: %v", ErrInternal, err)
		}

		req.ApplyTo(current)
		current.Normalize()

		if verrs := current.Validate(); len(verrs) > 0 {
			return verrs
		}

		updated, err := s.scheduleRepo.Update(txCtx, current)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				return ErrScheduleNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			s.logger.Warn("Update: validation failed: %v", err)
		case errors.Is(err, ErrScheduleNotFound):
			s.logger.Warn("Update: schedule not found")
		default:
			s.logger.Error("Update: %v", err)
			if !errors.Is(err, ErrInternal) {
				err = fmt.Errorf("%w: %v", ErrInternal, err)
			}
		}
		return nil, err
	}

	s.logger.Info("Update: schedule id=%d updated, slot=%dmin, days=%v",
		result.ID, result.SlotDurationMinutes, result.WorkingDays)
	return models.FromDomainSchedule(result), nil
}
