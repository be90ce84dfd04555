package notify

import "errors"

var (
	// ErrInvalidPayload возвращается, когда уведомление не удалось разобрать
	ErrInvalidPayload = errors.New("notify: invalid payload")

	// ErrListen возвращается, когда не удалось подписаться на канал
	ErrListen = errors.New("notify: failed to listen")
)
