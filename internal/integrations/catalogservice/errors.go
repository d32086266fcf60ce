package catalogservice

import "errors"

var (
	// ErrConsoleNotFound возвращается, когда консоль не найдена в каталоге
	ErrConsoleNotFound = errors.New("catalogservice client: console not found")

	// ErrGameNotFound возвращается, когда игра не найдена в каталоге
	ErrGameNotFound = errors.New("catalogservice client: game not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что каталог недоступен и метаданные следует опустить
	ErrServiceDegraded = errors.New("catalogservice unavailable: graceful degradation applied")
)
