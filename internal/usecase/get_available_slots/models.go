package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// Request модель запроса на получение слотов
type Request struct {
	Date time.Time // Дата (без времени)
}

// Response модель ответа со слотами утреннего и дневного окна
type Response struct {
	Date                time.Time
	IsWorkingDay        bool
	SlotDurationMinutes int
	MorningSlots        []domain.TimeSlot
	AfternoonSlots      []domain.TimeSlot
}

// AllSlots утренние и дневные слоты одним списком
func (r *Response) AllSlots() []domain.TimeSlot {
	all := make([]domain.TimeSlot, 0, len(r.MorningSlots)+len(r.AfternoonSlots))
	all = append(all, r.MorningSlots...)
	all = append(all, r.AfternoonSlots...)
	return all
}

// AvailableCount количество свободных слотов
func (r *Response) AvailableCount() int {
	count := 0
	for _, slot := range r.AllSlots() {
		if slot.IsAvailable {
			count++
		}
	}
	return count
}
