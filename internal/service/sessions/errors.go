package sessions

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("service sessions: session not found")

	// ErrAccessDenied возвращается при попытке работать с чужой сессией
	ErrAccessDenied = errors.New("service sessions: access denied")

	// ErrNotCancellable возвращается при отмене сессии в недопустимом статусе
	ErrNotCancellable = errors.New("service sessions: session cannot be cancelled in its current status")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service sessions: internal error")
)
