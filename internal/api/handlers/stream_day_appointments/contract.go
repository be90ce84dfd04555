package stream_day_appointments

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/infra/notify"
)

type Subscriber interface {
	Subscribe(date time.Time) *notify.Subscription
}

type StreamMetrics interface {
	StreamOpened()
	StreamClosed()
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
