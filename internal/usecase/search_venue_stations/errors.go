package search_venue_stations

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("search_venue_stations: invalid input data")

	// ErrVenueNotFound возвращается, когда венью не найдено или не принимает брони
	ErrVenueNotFound = errors.New("search_venue_stations: venue not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("search_venue_stations: internal error")
)
