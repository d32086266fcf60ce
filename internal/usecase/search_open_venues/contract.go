package search_open_venues

import (
	"context"
	"time"

	"github.com/m04kA/GSB-BookingService/internal/domain"
	"github.com/m04kA/GSB-BookingService/internal/integrations/catalogservice"
)

// VenueRepository интерфейс репозитория венью
type VenueRepository interface {
	SearchCandidates(ctx context.Context, filter domain.VenueSearchFilter) ([]*domain.Venue, error)
	GetWeeksByVenueIDs(ctx context.Context, venueIDs []int64) (map[int64]domain.WeekSchedule, error)
	GetByVenueIDsAndDay(ctx context.Context, venueIDs []int64, day domain.DayOfWeek) (map[int64]*domain.WorkingHoursEntry, error)
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
	GetConsole(ctx context.Context, consoleID int64) (*catalogservice.Console, error)
	GetGamesByIDs(ctx context.Context, gameIDs []int64) (map[int64]*catalogservice.Game, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
