package domain

import (
	"time"

	"github.com/m04kA/GSB-BookingService/pkg/types"
)

// Reservation бронирование старого формата
// Сосуществует с Session: новые клиентские брони создаются как сессии,
// reservation остаётся для блокировок от имени венью и исторических записей
// UserID == nil означает блокировку слота самим венью
type Reservation struct {
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

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiedRange занятый интервал времени станции на дату
// Единый вид, к которому приводятся оба вида записей бронирования:
// расчёт доступности не знает, из какой таблицы пришёл интервал
type OccupiedRange struct {
	StationID int64
	Start     types.TimeString
	End       types.TimeString
}

// Overlaps проверяет реальное пересечение полуоткрытых интервалов [start, end)
// Граничащие интервалы (конец одного == начало другого) не пересекаются
func (r OccupiedRange) Overlaps(start, end types.TimeString) bool {
	return r.Start.IsBefore(end) && r.End.IsAfter(start)
}
