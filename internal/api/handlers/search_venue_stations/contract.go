package search_venue_stations

import (
	"context"

	searchVenueStations "github.com/m04kA/GSB-BookingService/internal/usecase/search_venue_stations"
)

type SearchVenueStationsUseCase interface {
	Execute(ctx context.Context, req *searchVenueStations.Request) (*searchVenueStations.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
