package check_availability

import (
	"time"

	"github.com/m04kA/GSB-BookingService/pkg/types"
)

// Request модель запроса проверки доступности интервала
type Request struct {
	StationID int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Response модель ответа проверки доступности
type Response struct {
	IsAvailable bool
}
