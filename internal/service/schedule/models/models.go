package models

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Request модели

// UpdateScheduleRequest запрос на изменение настроек мастерской.
// Все поля опциональны - обновляются только переданные значения.
// Пустая строка в contactPhone, googleMapsUrl, pricesUrl очищает поле.
type UpdateScheduleRequest struct {
	ShopName            *string `json:"shopName,omitempty"`
	SlotDurationMinutes *int    `json:"slotDurationMinutes,omitempty"`
	MorningStart        *string `json:"morningStart,omitempty"`
	MorningEnd          *string `json:"morningEnd,omitempty"`
	AfternoonStart      *string `json:"afternoonStart,omitempty"`
	AfternoonEnd        *string `json:"afternoonEnd,omitempty"`
	WorkingDays         []int   `json:"workingDays,omitempty"`
	ContactPhone        *string `json:"contactPhone,omitempty"`
	GoogleMapsURL       *string `json:"googleMapsUrl,omitempty"`
	PricesURL           *string `json:"pricesUrl,omitempty"`
}

// IsEmpty возвращает true, если ни одно поле не передано
func (r *UpdateScheduleRequest) IsEmpty() bool {
	return r.ShopName == nil && r.SlotDurationMinutes == nil &&
		r.MorningStart == nil && r.MorningEnd == nil &&
		r.AfternoonStart == nil && r.AfternoonEnd == nil &&
		r.WorkingDays == nil && r.ContactPhone == nil &&
		r.GoogleMapsURL == nil && r.PricesURL == nil
}

// ApplyTo применяет переданные поля к текущим настройкам
func (r *UpdateScheduleRequest) ApplyTo(s *domain.ShopSchedule) {
	if r.ShopName != nil {
		s.ShopName = *r.ShopName
	}
	if r.SlotDurationMinutes != nil {
		s.SlotDurationMinutes = *r.SlotDurationMinutes
	}
	if r.MorningStart != nil {
		s.MorningStart = parseTime(*r.MorningStart)
	}
	if r.MorningEnd != nil {
		s.MorningEnd = parseTime(*r.MorningEnd)
	}
	if r.AfternoonStart != nil {
		s.AfternoonStart = parseTime(*r.AfternoonStart)
	}
	if r.AfternoonEnd != nil {
		s.AfternoonEnd = parseTime(*r.AfternoonEnd)
	}
	if r.WorkingDays != nil {
		s.WorkingDays = r.WorkingDays
	}
	if r.ContactPhone != nil {
		s.ContactPhone = optional(*r.ContactPhone)
	}
	if r.GoogleMapsURL != nil {
		s.GoogleMapsURL = optional(*r.GoogleMapsURL)
	}
	if r.PricesURL != nil {
		s.PricesURL = optional(*r.PricesURL)
	}
}

// Validate проверяет переданные поля, которые можно оценить без текущих настроек.
// Порядок границ окна проверяется, только если обе границы есть в запросе.
// Пересечение окон и остальное проверяет ShopSchedule.Validate после слияния.
func (r *UpdateScheduleRequest) Validate() domain.ValidationErrors {
	var errs domain.ValidationErrors

	if r.ShopName != nil {
		domain.ValidateShopName(&errs, *r.ShopName)
	}
	if r.SlotDurationMinutes != nil {
		domain.ValidateSlotDuration(&errs, *r.SlotDurationMinutes)
	}

	morningStart, morningStartOK := r.validateTime(&errs, domain.FieldMorningStart, r.MorningStart)
	morningEnd, morningEndOK := r.validateTime(&errs, domain.FieldMorningEnd, r.MorningEnd)
	afternoonStart, afternoonStartOK := r.validateTime(&errs, domain.FieldAfternoonStart, r.AfternoonStart)
	afternoonEnd, afternoonEndOK := r.validateTime(&errs, domain.FieldAfternoonEnd, r.AfternoonEnd)

	if morningStartOK && morningEndOK {
		domain.ValidateWindowOrder(&errs, domain.FieldMorningEnd, morningStart, morningEnd)
	}
	if afternoonStartOK && afternoonEndOK {
		domain.ValidateWindowOrder(&errs, domain.FieldAfternoonEnd, afternoonStart, afternoonEnd)
	}

	if r.WorkingDays != nil {
		domain.ValidateWorkingDays(&errs, r.WorkingDays)
	}
	domain.ValidateContactPhone(&errs, r.ContactPhone)
	domain.ValidateURL(&errs, domain.FieldGoogleMapsURL, r.GoogleMapsURL)
	domain.ValidateURL(&errs, domain.FieldPricesURL, r.PricesURL)

	return errs
}

func (r *UpdateScheduleRequest) validateTime(errs *domain.ValidationErrors, field string, raw *string) (int, bool) {
	if raw == nil {
		return 0, false
	}
	return domain.ValidateTimeOfDay(errs, field, parseTime(*raw))
}

// Response модели

// ScheduleResponse ответ с настройками мастерской
type ScheduleResponse struct {
	ID                  int64     `json:"id"`
	ShopName            string    `json:"shopName"`
	SlotDurationMinutes int       `json:"slotDurationMinutes"`
	MorningStart        string    `json:"morningStart"` // "09:00"
	MorningEnd          string    `json:"morningEnd"`
	AfternoonStart      string    `json:"afternoonStart"`
	AfternoonEnd        string    `json:"afternoonEnd"`
	WorkingDays         []int     `json:"workingDays"` // 0 = воскресенье
	ContactPhone        *string   `json:"contactPhone,omitempty"`
	GoogleMapsURL       *string   `json:"googleMapsUrl,omitempty"`
	PricesURL           *string   `json:"pricesUrl,omitempty"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.ShopSchedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	workingDays := s.WorkingDays
	if workingDays == nil {
		workingDays = []int{}
	}

	return &ScheduleResponse{
		ID:                  s.ID,
		ShopName:            s.ShopName,
		SlotDurationMinutes: s.SlotDurationMinutes,
		MorningStart:        s.MorningStart.String(),
		MorningEnd:          s.MorningEnd.String(),
		AfternoonStart:      s.AfternoonStart.String(),
		AfternoonEnd:        s.AfternoonEnd.String(),
		WorkingDays:         workingDays,
		ContactPhone:        s.ContactPhone,
		GoogleMapsURL:       s.GoogleMapsURL,
		PricesURL:           s.PricesURL,
		UpdatedAt:           s.UpdatedAt,
	}
}

// parseTime приводит "HH:MM:SS" к "HH:MM".
// Некорректное значение сохраняется как есть, его отклонит валидация.
func parseTime(raw string) types.TimeString {
	t, err := types.NewTimeStringFromString(raw)
	if err != nil {
		return types.TimeString(strings.TrimSpace(raw))
	}
	return t
}

func optional(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
