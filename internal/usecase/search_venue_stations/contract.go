package search_venue_stations

import (
	"context"
	"time"

	"github.com/m04kA/GSB-BookingService/internal/domain"
	"github.com/m04kA/GSB-BookingService/internal/integrations/catalogservice"
)

// VenueRepository интерфейс репозитория венью
type VenueRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.Venue, error)
	GetWeek(ctx context.Context, venueID int64) (domain.WeekSchedule, error)
}

// StationRepository интерфейс репозитория станций
type StationRepository interface {
	ListByFilter(ctx context.Context, filter domain.StationFilter) ([]*domain.Station, error)
}

// BookingRepository интерфейс чтения занятости станций
type BookingRepository interface {
	GetOccupiedRangesByStationIDs(ctx context.Context, stationIDs []int64, date time.Time) (map[int64][]domain.OccupiedRange, error)
}

// CatalogServiceClient интерфейс клиента каталога консолей и игр
type CatalogServiceClient interface {
	GetGamesByIDs(ctx context.Context, gameIDs []int64) (map[int64]*catalogservice.Game, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
