package get_available_slots

import (
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date                string          `json:"date"`
	IsWorkingDay        bool            `json:"isWorkingDay"`
	SlotDurationMinutes int             `json:"slotDurationMinutes"`
	AvailableCount      int             `json:"availableCount"`
	MorningSlots        []AvailableSlot `json:"morningSlots"`
	AfternoonSlots      []AvailableSlot `json:"afternoonSlots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Start       string `json:"start"` // "10:00"
	End         string `json:"end"`
	IsAvailable bool   `json:"isAvailable"`
	IsPast      bool   `json:"isPast"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	return &AvailableSlotsResponse{
		Date:                resp.Date.Format(domain.DateFormat),
		IsWorkingDay:        resp.IsWorkingDay,
		SlotDurationMinutes: resp.SlotDurationMinutes,
		AvailableCount:      resp.AvailableCount(),
		MorningSlots:        fromSlots(resp.MorningSlots),
		AfternoonSlots:      fromSlots(resp.AfternoonSlots),
	}
}

func fromSlots(slots []domain.TimeSlot) []AvailableSlot {
	result := make([]AvailableSlot, len(slots))
	for i, slot := range slots {
		result[i] = AvailableSlot{
			Start:       slot.Start.String(),
			End:         slot.End.String(),
			IsAvailable: slot.IsAvailable,
			IsPast:      slot.IsPast,
		}
	}
	return result
}
