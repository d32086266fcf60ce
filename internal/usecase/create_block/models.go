package create_block

import (
	"time"

	"github.com/m04kA/GSB-BookingService/pkg/types"
)

// Request модель запроса на блокировку слота от имени венью
// UserID == nil означает блокировку без привязки к клиенту;
// OverridePrice позволяет обойтись без тарифа (например, нулевая цена)
type Request struct {
	UserID        *int64
	VenueID       int64
	StationID     int64
	ConsoleID     int64
	Date          time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	PlayersCount  int
	OverridePrice *int64
}

// Response модель ответа с созданной блокировкой
type Response struct {
	ID           int64
	UserID       *int64
	VenueID      int64
	StationID    int64
	ConsoleID    int64
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	PlayersCount int
	Price        int64
	IsPaid       bool
	IsAccepted   bool
	CreatedAt    time.Time
}
