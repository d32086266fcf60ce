package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/GSB-BookingService/internal/domain"
)

// StationRepository интерфейс репозитория станций
type StationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Station, error)
}

// BookingRepository интерфейс чтения занятости станции
type BookingRepository interface {
	GetOccupiedRanges(ctx context.Context, stationID int64, date time.Time) ([]domain.OccupiedRange, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
