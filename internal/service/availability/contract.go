package availability

import (
	"context"
	"time"

	"github.com/m04kA/GSB-BookingService/internal/domain"
)

// BookingRepository интерфейс чтения занятости станций
type BookingRepository interface {
	GetOccupiedRanges(ctx context.Context, stationID int64, date time.Time) ([]domain.OccupiedRange, error)
	GetOccupiedRangesByStationIDs(ctx context.Context, stationIDs []int64, date time.Time) (map[int64][]domain.OccupiedRange, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
