package create_appointment

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Имена полей в ошибках валидации
const (
	FieldDate        = "date"
	FieldStartTime   = "startTime"
	FieldClientName  = "clientName"
	FieldClientPhone = "clientPhone"
	FieldClientEmail = "clientEmail"
	FieldNotes       = "notes"
)

// normalizeRequest обрезает пробелы, пустые необязательные поля превращает в nil
func normalizeRequest(req *Request) {
	req.ClientName = strings.TrimSpace(req.ClientName)
	req.ClientPhone = strings.TrimSpace(req.ClientPhone)
	req.ClientEmail = trimOptional(req.ClientEmail)
	req.Notes = trimOptional(req.Notes)
}

// validateRequest валидирует входные данные запроса и возвращает ошибки по всем полям
func validateRequest(req *Request) error {
	var errs domain.ValidationErrors

	if req.Date.IsZero() {
		errs.Add(FieldDate, "дата обязательна")
	}

	if req.StartTime.IsZero() {
		errs.Add(FieldStartTime, "время обязательно")
	} else if err := req.StartTime.Validate(); err != nil {
		errs.Add(FieldStartTime, "некорректное время, ожидается HH:MM")
	}

	if req.ClientName == "" {
		errs.Add(FieldClientName, "имя обязательно")
	} else if len([]rune(req.ClientName)) > domain.MaxClientNameLength {
		errs.Add(FieldClientName, "имя слишком длинное")
	}

	if req.ClientPhone == "" {
		errs.Add(FieldClientPhone, "телефон обязателен")
	} else if domain.CountDigits(req.ClientPhone) < domain.MinPhoneDigits {
		errs.Add(FieldClientPhone, "телефон должен содержать минимум 8 цифр")
	}

	if req.ClientEmail != nil && !domain.IsValidEmail(*req.ClientEmail) {
		errs.Add(FieldClientEmail, "некорректный email")
	}

	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		errs.Add(FieldNotes, "комментарий слишком длинный")
	}

	return errs.Err()
}

// slotEnd проверяет, что start совпадает с началом слота одного из окон,
// и возвращает время окончания слота
func slotEnd(schedule *domain.ShopSchedule, start types.TimeString) (types.TimeString, bool) {
	windows := [][2]types.TimeString{
		{schedule.MorningStart, schedule.MorningEnd},
		{schedule.AfternoonStart, schedule.AfternoonEnd},
	}

	duration := schedule.SlotDurationMinutes
	if duration <= 0 {
		return "", false
	}

	startMin, err := start.Minutes()
	if err != nil {
		return "", false
	}

	for _, w := range windows {
		windowStart, err := w[0].Minutes()
		if err != nil {
			continue
		}
		windowEnd, err := w[1].Minutes()
		if err != nil {
			continue
		}

		if startMin < windowStart || startMin+duration > windowEnd {
			continue
		}
		if (startMin-windowStart)%duration != 0 {
			continue
		}

		end, err := start.AddMinutes(duration)
		if err != nil {
			return "", false
		}
		return end, true
	}

	return "", false
}

// isSlotInPast проверяет, что начало слота раньше now.
// Дата сравнивается по календарю в часовом поясе now.
func isSlotInPast(date time.Time, start types.TimeString, now time.Time) bool {
	minutes, err := start.Minutes()
	if err != nil {
		return false
	}
	y, m, d := date.Date()
	slotStart := time.Date(y, m, d, minutes/60, minutes%60, 0, 0, now.Location())
	return slotStart.Before(now)
}

// trimOptional обрезает пробелы; пустое значение становится nil
func trimOptional(s *string) *string {
	trimmed := strings.TrimSpace(ptr.Value(s))
	if trimmed == "" {
		return nil
	}
	return ptr.Ptr(trimmed)
}
