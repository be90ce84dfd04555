package domain

import (
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Field names reported in ValidationErrors for a ShopSchedule
const (
	FieldShopName            = "shopName"
	FieldSlotDurationMinutes = "slotDurationMinutes"
	FieldMorningStart        = "morningStart"
	FieldMorningEnd          = "morningEnd"
	FieldAfternoonStart      = "afternoonStart"
	FieldAfternoonEnd        = "afternoonEnd"
	FieldWorkingDays         = "workingDays"
	FieldContactPhone        = "contactPhone"
	FieldGoogleMapsURL       = "googleMapsUrl"
	FieldPricesURL           = "pricesUrl"
)

// ShopSchedule is the single operating-hours configuration of the shop.
// A day has two windows (morning and afternoon); a window with End == Start
// produces no slots. WorkingDays holds weekdays 0..6 where 0 is Sunday.
type ShopSchedule struct {
	ID                  int64
	ShopName            string
	SlotDurationMinutes int
	MorningStart        types.TimeString
	MorningEnd          types.TimeString
	AfternoonStart      types.TimeString
	AfternoonEnd        types.TimeString
	WorkingDays         []int
	ContactPhone        *string
	GoogleMapsURL       *string
	PricesURL           *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsWorkingDay reports whether the shop is open on date's weekday
func (s *ShopSchedule) IsWorkingDay(date time.Time) bool {
	weekday := int(date.Weekday())
	for _, d := range s.WorkingDays {
		if d == weekday {
			return true
		}
	}
	return false
}

// Validate checks the schedule and returns every rejected field.
// It never stops at the first error.
func (s *ShopSchedule) Validate() ValidationErrors {
	var errs ValidationErrors

	ValidateShopName(&errs, s.ShopName)
	ValidateSlotDuration(&errs, s.SlotDurationMinutes)

	morningStart, morningStartOK := ValidateTimeOfDay(&errs, FieldMorningStart, s.MorningStart)
	morningEnd, morningEndOK := ValidateTimeOfDay(&errs, FieldMorningEnd, s.MorningEnd)
	afternoonStart, afternoonStartOK := ValidateTimeOfDay(&errs, FieldAfternoonStart, s.AfternoonStart)
	afternoonEnd, afternoonEndOK := ValidateTimeOfDay(&errs, FieldAfternoonEnd, s.AfternoonEnd)

	if morningStartOK && morningEndOK {
		ValidateWindowOrder(&errs, FieldMorningEnd, morningStart, morningEnd)
	}
	if afternoonStartOK && afternoonEndOK {
		ValidateWindowOrder(&errs, FieldAfternoonEnd, afternoonStart, afternoonEnd)
	}

	// Окна не должны пересекаться, иначе один и тот же слот появится дважды
	if morningStartOK && morningEndOK && afternoonStartOK && afternoonEndOK &&
		morningEnd > morningStart && afternoonEnd > afternoonStart &&
		max(morningStart, afternoonStart) < min(morningEnd, afternoonEnd) {
		errs.Add(FieldAfternoonStart, "дневное окно пересекается с утренним")
	}

	ValidateWorkingDays(&errs, s.WorkingDays)
	ValidateContactPhone(&errs, s.ContactPhone)
	ValidateURL(&errs, FieldGoogleMapsURL, s.GoogleMapsURL)
	ValidateURL(&errs, FieldPricesURL, s.PricesURL)

	return errs
}

// Проверки отдельных полей. Каждая смотрит только на своё значение,
// поэтому их можно применять к частичному обновлению без текущих настроек.

func ValidateShopName(errs *ValidationErrors, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		errs.Add(FieldShopName, "название обязательно")
	} else if len([]rune(name)) > MaxShopNameLength {
		errs.Add(FieldShopName, "название слишком длинное")
	}
}

func ValidateSlotDuration(errs *ValidationErrors, minutes int) {
	if minutes < MinSlotDurationMinutes {
		errs.Add(FieldSlotDurationMinutes, "длительность слота должна быть больше 0")
	} else if minutes > MaxSlotDurationMinutes {
		errs.Add(FieldSlotDurationMinutes, "длительность слота слишком большая")
	}
}

// ValidateTimeOfDay возвращает минуты от начала суток и признак корректности
func ValidateTimeOfDay(errs *ValidationErrors, field string, t types.TimeString) (int, bool) {
	if t.IsZero() {
		errs.Add(field, "время обязательно")
		return 0, false
	}
	minutes, err := t.Minutes()
	if err != nil {
		errs.Add(field, "некорректное время, ожидается HH:MM")
		return 0, false
	}
	return minutes, true
}

// ValidateWindowOrder отклоняет окно, конец которого раньше начала.
// End == Start допустимо: такое окно просто не даёт слотов.
func ValidateWindowOrder(errs *ValidationErrors, endField string, start, end int) {
	if end >= start {
		return
	}
	if endField == FieldMorningEnd {
		errs.Add(endField, "конец утреннего окна раньше начала")
		return
	}
	errs.Add(endField, "конец дневного окна раньше начала")
}

func ValidateWorkingDays(errs *ValidationErrors, days []int) {
	for _, d := range days {
		if d < 0 || d > 6 {
			errs.Add(FieldWorkingDays, "дни недели должны быть в диапазоне 0..6")
			return
		}
	}
}

func ValidateContactPhone(errs *ValidationErrors, phone *string) {
	if phone != nil && strings.TrimSpace(*phone) != "" && CountDigits(*phone) < MinPhoneDigits {
		errs.Add(FieldContactPhone, "телефон должен содержать минимум 8 цифр")
	}
}

func ValidateURL(errs *ValidationErrors, field string, raw *string) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return
	}
	u, err := url.Parse(strings.TrimSpace(*raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs.Add(field, "некорректная ссылка")
	}
}

// Normalize sorts and de-duplicates working days and trims text fields
func (s *ShopSchedule) Normalize() {
	s.ShopName = strings.TrimSpace(s.ShopName)
	s.WorkingDays = NormalizeWorkingDays(s.WorkingDays)
}

// NormalizeWorkingDays returns sorted unique weekdays
func NormalizeWorkingDays(days []int) []int {
	seen := make(map[int]struct{}, len(days))
	result := make([]int, 0, len(days))
	for _, d := range days {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		result = append(result, d)
	}
	sort.Ints(result)
	return result
}

// CountDigits counts decimal digits in s
func CountDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
