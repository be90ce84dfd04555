package schedule

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// ScheduleRepository интерфейс репозитория настроек мастерской
type ScheduleRepository interface {
	Get(ctx context.Context) (*domain.ShopSchedule, error)
	Update(ctx context.Context, schedule *domain.ShopSchedule) (*domain.ShopSchedule, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
