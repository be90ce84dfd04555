package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
)

const (
	msgRateLimited        = "слишком много запросов, попробуйте позже"
	msgLimiterUnavailable = "сервис временно недоступен"
)

// Counter считает запросы по ключу в пределах окна
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RedisCounter счётчик фиксированного окна в Redis, общий для всех инстансов
type RedisCounter struct {
	rdb redis.Scripter
}

func NewRedisCounter(rdb redis.Scripter) *RedisCounter {
	return &RedisCounter{rdb: rdb}
}

func (c *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	ms := window.Milliseconds()
	if ms <= 0 {
		ms = time.Minute.Milliseconds()
	}

	res, err := fixedWindowScript.Run(ctx, c.rdb, []string{key}, ms).Result()
	if err != nil {
		return 0, err
	}

	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected redis script result type %T", res)
	}
}

// RateLimitConfig параметры ограничителя
type RateLimitConfig struct {
	Prefix   string
	Limit    int
	Window   time.Duration
	FailOpen bool // пропускать запросы, если счётчик недоступен
	// Брать адрес клиента из X-Forwarded-For. Без доверенного прокси клиент
	// подставит любой адрес и получит новый счётчик, поэтому по умолчанию выключено.
	TrustForwardedFor bool
}

// RateLimit ограничивает число запросов с одного адреса
func RateLimit(counter Counter, cfg RateLimitConfig, logger Logger) mux.MiddlewareFunc {
	if cfg.Limit <= 0 {
		cfg.Limit = 10
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "rl"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := cfg.Prefix + ":" + clientKey(r, cfg.TrustForwardedFor)

			count, err := counter.Incr(r.Context(), key, cfg.Window)
			if err != nil {
				logger.Warn("%s %s - Rate limiter error: %v", r.Method, r.URL.Path, err)
				if cfg.FailOpen {
					next.ServeHTTP(w, r)
					return
				}
				handlers.RespondError(w, http.StatusServiceUnavailable, msgLimiterUnavailable)
				return
			}

			if count > int64(cfg.Limit) {
				logger.Warn("%s %s - Rate limit exceeded: key=%s, count=%d", r.Method, r.URL.Path, key, count)
				w.Header().Set("Retry-After", strconv.Itoa(int(cfg.Window.Seconds())))
				handlers.RespondError(w, http.StatusTooManyRequests, msgRateLimited)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request, trustForwarded bool) string {
	if trustForwarded {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			first, _, _ := strings.Cut(forwarded, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}
