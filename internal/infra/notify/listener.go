package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// ListenerConfig параметры LISTEN соединения
type ListenerConfig struct {
	Channel              string
	MinReconnectInterval time.Duration
	MaxReconnectInterval time.Duration
	PingInterval         time.Duration
}

// Listener слушает канал pg_notify и публикует события записей в хаб
type Listener struct {
	listener     *pq.Listener
	channel      string
	pingInterval time.Duration
	hub          *Hub
	logger       Logger
}

// NewListener создаёт слушателя. Соединение устанавливается и восстанавливается lib/pq.
func NewListener(dsn string, cfg ListenerConfig, hub *Hub, logger Logger) *Listener {
	l := &Listener{
		channel:      cfg.Channel,
		pingInterval: cfg.PingInterval,
		hub:          hub,
		logger:       logger,
	}
	l.listener = pq.NewListener(dsn, cfg.MinReconnectInterval, cfg.MaxReconnectInterval, l.onEvent)
	return l
}

// Run подписывается на канал и раздаёт уведомления до отмены ctx.
// Соединение закрывается при выходе.
func (l *Listener) Run(ctx context.Context) error {
	defer func() {
		if err := l.listener.Close(); err != nil {
			l.logger.Warn("Listener: close error: %v", err)
		}
	}()

	if err := l.listener.Listen(l.channel); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrListen, l.channel, err)
	}
	l.logger.Info("Listener: listening on channel %s", l.channel)

	ping := l.pingInterval
	if ping <= 0 {
		ping = time.Minute
	}
	ticker := time.NewTicker(ping)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Listener: stopped")
			return nil
		case n, ok := <-l.listener.Notify:
			if !ok {
				return nil
			}
			l.handle(n)
		case <-ticker.C:
			if err := l.listener.Ping(); err != nil {
				l.logger.Warn("Listener: ping failed: %v", err)
			}
		}
	}
}

// handle публикует уведомление. nil приходит после переподключения,
// тогда подписчики должны перечитать данные.
func (l *Listener) handle(n *pq.Notification) {
	if n == nil {
		l.logger.Warn("Listener: connection re-established, requesting resync")
		l.hub.Resync()
		return
	}

	evt, err := DecodeEvent(n.Extra)
	if err != nil {
		l.logger.Warn("Listener: skip notification on %s: %v", n.Channel, err)
		return
	}

	l.hub.Publish(evt)
}

func (l *Listener) onEvent(event pq.ListenerEventType, err error) {
	switch event {
	case pq.ListenerEventConnected:
		l.logger.Info("Listener: connected")
	case pq.ListenerEventDisconnected:
		l.logger.Warn("Listener: disconnected: %v", err)
	case pq.ListenerEventReconnected:
		l.logger.Info("Listener: reconnected")
	case pq.ListenerEventConnectionAttemptFailed:
		l.logger.Error("Listener: connection attempt failed: %v", err)
	}
}
