package check_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrStationNotFound возвращается, когда станция не найдена или не бронируема
	ErrStationNotFound = errors.New("check_availability: station not found or not bookable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
