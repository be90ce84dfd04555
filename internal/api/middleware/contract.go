package middleware

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/service/auth"
)

// TokenParser проверяет токен администратора
type TokenParser interface {
	ParseToken(tokenString string) (*auth.Claims, error)
}

// MetricsCollector принимает метрики HTTP запросов
type MetricsCollector interface {
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
