package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// GenerateSlots нарезает окно [windowStart, windowEnd) на слоты длиной durationMinutes.
// Слоты генерируются с начала окна с фиксированным шагом, неполный последний слот отбрасывается.
//
// Слот занят, если есть неотменённая запись на targetDate с тем же временем начала
// (сравнение с точностью до минуты). Слот в прошлом, если targetDate раньше сегодняшнего
// дня, или targetDate сегодня и начало слота строго раньше now.
//
// При durationMinutes <= 0 или пустом/перевёрнутом окне возвращается пустой список.
// Функция чистая: результат зависит только от аргументов.
func GenerateSlots(
	windowStart types.TimeString,
	windowEnd types.TimeString,
	durationMinutes int,
	appointments []*domain.Appointment,
	targetDate time.Time,
	now time.Time,
) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0)

	if durationMinutes <= 0 {
		return slots
	}

	start, err := windowStart.Minutes()
	if err != nil {
		return slots
	}
	end, err := windowEnd.Minutes()
	if err != nil {
		return slots
	}
	if start >= end {
		return slots
	}

	occupied := occupiedStarts(appointments, targetDate)
	dayState := compareDay(targetDate, now)

	for cursor := start; cursor+durationMinutes <= end; cursor += durationMinutes {
		slotStart, err := types.FromMinutes(cursor)
		if err != nil {
			break
		}
		slotEnd, err := types.FromMinutes(cursor + durationMinutes)
		if err != nil {
			break
		}

		isPast := isSlotPast(dayState, targetDate, cursor, now)
		_, isOccupied := occupied[cursor]

		slots = append(slots, domain.TimeSlot{
			Start:       slotStart,
			End:         slotEnd,
			IsAvailable: !isOccupied && !isPast,
			IsPast:      isPast,
		})
	}

	return slots
}

// occupiedStarts собирает минуты начала активных записей на targetDate
func occupiedStarts(appointments []*domain.Appointment, targetDate time.Time) map[int]struct{} {
	occupied := make(map[int]struct{}, len(appointments))
	for _, appt := range appointments {
		if appt == nil || !appt.IsActive() || !appt.IsOn(targetDate) {
			continue
		}
		minutes, err := appt.StartTime.Minutes()
		if err != nil {
			continue
		}
		occupied[minutes] = struct{}{}
	}
	return occupied
}

type dayRelation int

const (
	dayPast dayRelation = iota
	dayToday
	dayFuture
)

// compareDay сравнивает календарную дату targetDate с сегодняшним днём в часовом поясе now
func compareDay(targetDate, now time.Time) dayRelation {
	ty, tm, td := targetDate.Date()
	target := time.Date(ty, tm, td, 0, 0, 0, 0, now.Location())
	today := domain.DateOnly(now)

	switch {
	case target.Before(today):
		return dayPast
	case target.Equal(today):
		return dayToday
	default:
		return dayFuture
	}
}

func isSlotPast(day dayRelation, targetDate time.Time, startMinutes int, now time.Time) bool {
	switch day {
	case dayPast:
		return true
	case dayToday:
		y, m, d := targetDate.Date()
		slotStart := time.Date(y, m, d, startMinutes/60, startMinutes%60, 0, 0, now.Location())
		return slotStart.Before(now)
	default:
		return false
	}
}
