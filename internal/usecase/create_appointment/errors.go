package create_appointment

import "errors"

var (
	// ErrSlotAlreadyTaken возвращается, когда на слот уже есть неотменённая запись
	ErrSlotAlreadyTaken = errors.New("create_appointment: slot already taken")

	// ErrNotWorkingDay возвращается, когда мастерская не работает в указанный день
	ErrNotWorkingDay = errors.New("create_appointment: not a working day")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает с началом ни одного слота
	ErrInvalidTimeSlot = errors.New("create_appointment: invalid time slot")

	// ErrSlotInPast возвращается при попытке записаться на прошедшее время
	ErrSlotInPast = errors.New("create_appointment: slot is in the past")

	// ErrStoreUnavailable возвращается при любой другой ошибке хранилища
	ErrStoreUnavailable = errors.New("create_appointment: store unavailable")
)

// Значения метки result для счётчика записей
const (
	resultCreated  = "created"
	resultConflict = "conflict"
	resultRejected = "rejected"
	resultError    = "error"
)
