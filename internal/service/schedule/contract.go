package schedule

import (
	"context"

	"github.com/m04kA/GSB-BookingService/internal/domain"
)

// VenueRepository интерфейс репозитория венью и расписаний
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
	GetWeek(ctx context.Context, venueID int64) (domain.WeekSchedule, error)
	ReplaceWeek(ctx context.Context, venueID int64, entries []domain.WorkingHoursEntry) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
