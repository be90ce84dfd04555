package notify

import (
	"sync"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

const defaultSubscriberBuffer = 16

// Hub раздаёт события записей подписчикам, которые смотрят ту же дату
type Hub struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	buffer int
	logger Logger
}

// NewHub создаёт хаб. buffer размер очереди событий каждого подписчика.
func NewHub(buffer int, logger Logger) *Hub {
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}
	return &Hub{
		subs:   make(map[*Subscription]struct{}),
		buffer: buffer,
		logger: logger,
	}
}

// Subscribe подписывает на события одной даты.
// Вызывающий обязан закрыть подписку.
func (h *Hub) Subscribe(date time.Time) *Subscription {
	sub := &Subscription{
		hub:    h,
		date:   domain.DateOnly(date),
		events: make(chan domain.AppointmentEvent, h.buffer),
		resync: make(chan struct{}, 1),
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	return sub
}

// Publish доставляет событие подписчикам его даты без блокировки.
// Если очередь подписчика переполнена, событие отбрасывается, а подписчик
// получает сигнал resync и должен перечитать день целиком.
func (h *Hub) Publish(evt domain.AppointmentEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs {
		if !evt.Appointment.IsOn(sub.date) {
			continue
		}
		select {
		case sub.events <- evt:
		default:
			h.logger.Warn("Hub: subscriber queue for %s is full, requesting resync",
				sub.date.Format(domain.DateFormat))
			sub.signalResync()
		}
	}
}

// Resync просит всех подписчиков перечитать данные.
// Используется после переподключения слушателя, когда события могли потеряться.
func (h *Hub) Resync() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs {
		sub.signalResync()
	}
}

// Count количество активных подписок
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, sub)
}

// Subscription подписка на события одной даты
type Subscription struct {
	hub       *Hub
	date      time.Time
	events    chan domain.AppointmentEvent
	resync    chan struct{}
	closeOnce sync.Once
}

// Events канал событий, закрывается при Close
func (s *Subscription) Events() <-chan domain.AppointmentEvent {
	return s.events
}

// Resync канал сигналов о пропущенных событиях
func (s *Subscription) Resync() <-chan struct{} {
	return s.resync
}

// Date дата подписки
func (s *Subscription) Date() time.Time {
	return s.date
}

// Close отписывает от хаба. Повторный вызов ничего не делает.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		s.hub.remove(s)
		close(s.events)
	})
}

func (s *Subscription) signalResync() {
	select {
	case s.resync <- struct{}{}:
	default:
	}
}
