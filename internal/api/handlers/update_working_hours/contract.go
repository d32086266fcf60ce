package update_working_hours

import (
	"context"

	"github.com/m04kA/GSB-BookingService/internal/domain"
)

type ScheduleService interface {
	ReplaceWeek(ctx context.Context, venueID int64, entries []domain.WorkingHoursEntry) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
