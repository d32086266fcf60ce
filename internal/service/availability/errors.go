package availability

import "errors"

var (
	// ErrInvalidRange возвращается при некорректном интервале запроса
	ErrInvalidRange = errors.New("service availability: invalid time range")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service availability: internal error")
)
