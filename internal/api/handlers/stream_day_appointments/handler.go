package stream_day_appointments

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/dayview"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments/models"
)

const (
	msgMissingDate = "дата обязательна"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

	defaultKeepAlive = 25 * time.Second
)

type Handler struct {
	hub       Subscriber
	loader    dayview.Loader
	metrics   StreamMetrics
	keepAlive time.Duration
	logger    Logger
}

// NewHandler создает обработчик потока записей. metrics может быть nil.
func NewHandler(hub Subscriber, loader dayview.Loader, metrics StreamMetrics, keepAlive time.Duration, logger Logger) *Handler {
	if keepAlive <= 0 {
		keepAlive = defaultKeepAlive
	}
	return &Handler{
		hub:       hub,
		loader:    loader,
		metrics:   metrics,
		keepAlive: keepAlive,
		logger:    logger,
	}
}

// Handle GET /api/v1/admin/appointments/stream?date=YYYY-MM-DD
// Server-Sent Events: сначала snapshot дня, затем snapshot после каждого изменения.
// Для новой записи перед snapshot отправляется appointment_created.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /admin/appointments/stream - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /admin/appointments/stream - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	ctx := r.Context()

	// Подписываемся до первой загрузки, чтобы не потерять изменения между ними
	sub := h.hub.Subscribe(date)
	defer sub.Close()

	view := dayview.New(date, h.loader)
	if err := view.Refresh(ctx); err != nil {
		h.logger.Error("GET /admin/appointments/stream - Failed to load day: date=%s, error=%v", dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	rc := http.NewResponseController(w)
	// Поток живёт дольше WriteTimeout сервера
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if h.metrics != nil {
		h.metrics.StreamOpened()
		defer h.metrics.StreamClosed()
	}

	h.logger.Info("GET /admin/appointments/stream - Stream opened: date=%s, count=%d", dateStr, view.Len())

	send := func(event string, data interface{}) bool {
		if err := writeEvent(w, event, data); err != nil {
			h.logger.Warn("GET /admin/appointments/stream - Write failed: date=%s, error=%v", dateStr, err)
			return false
		}
		if err := rc.Flush(); err != nil {
			h.logger.Warn("GET /admin/appointments/stream - Flush failed: date=%s, error=%v", dateStr, err)
			return false
		}
		return true
	}

	if !send(EventSnapshot, snapshotPayload(view.Date(), view.Snapshot())) {
		return
	}

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("GET /admin/appointments/stream - Stream closed: date=%s", dateStr)
			return

		case evt, ok := <-sub.Events():
			if !ok {
				return
			}

			outcome := view.Apply(evt)
			if outcome == dayview.Ignored {
				continue
			}
			if outcome == dayview.Added && evt.Type == domain.ChangeInsert {
				if !send(EventCreated, models.FromDomainAppointment(&evt.Appointment)) {
					return
				}
			}
			if !send(EventSnapshot, snapshotPayload(view.Date(), view.Snapshot())) {
				return
			}

		case <-sub.Resync():
			if err := view.Refresh(ctx); err != nil {
				h.logger.Error("GET /admin/appointments/stream - Resync failed: date=%s, error=%v", dateStr, err)
				continue
			}
			if !send(EventSnapshot, snapshotPayload(view.Date(), view.Snapshot())) {
				return
			}

		case <-ticker.C:
			if err := writeKeepAlive(w); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}
