package search_open_venues

import (
	"context"

	searchOpenVenues "github.com/m04kA/GSB-BookingService/internal/usecase/search_open_venues"
)

type SearchOpenVenuesUseCase interface {
	Execute(ctx context.Context, req *searchOpenVenues.Request) (*searchOpenVenues.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
