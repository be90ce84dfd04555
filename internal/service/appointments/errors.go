package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrInvalidTransition возвращается, когда переход между статусами запрещён
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrSlotAlreadyTaken возвращается при восстановлении отменённой записи на занятый слот
	ErrSlotAlreadyTaken = errors.New("slot already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при ошибке хранилища
	ErrInternal = errors.New("service: internal error")
)
