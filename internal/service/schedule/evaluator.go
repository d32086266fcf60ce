package schedule

import (
	"fmt"
	"time"

	"github.com/m04kA/GSB-BookingService/internal/domain"
	"github.com/m04kA/GSB-BookingService/pkg/types"
)

const (
	summaryClosed   = "closed"
	summaryOpen24h  = "open 24h"
	dayStartMinutes = 0
	dayEndMinutes   = 24 * 60
)

// OpenRange возвращает эффективный интервал открытия дня в минутах от полуночи
// Отсутствующая запись и open24h дают полный день [0, 1440)
// Для закрытого дня ok = false
func OpenRange(entry *domain.WorkingHoursEntry) (openMin, closeMin int, ok bool) {
	if entry == nil || entry.IsOpen24h {
		return dayStartMinutes, dayEndMinutes, true
	}
	if entry.IsClosed {
		return 0, 0, false
	}
	if !entry.HasRange() {
		// Некорректная запись без флагов и диапазона трактуется как закрытый день
		return 0, 0, false
	}
	return entry.OpenTime.MustMinutes(), entry.CloseTime.MustMinutes(), true
}

// IsOpenOnDay сообщает, открыто ли венью хоть когда-то в указанный день
func IsOpenOnDay(week domain.WeekSchedule, day domain.DayOfWeek) bool {
	_, _, ok := OpenRange(week.Entry(day))
	return ok
}

// IsOpenAt сообщает, открыто ли венью в конкретный момент времени
// Граница закрытия не включается: в 22:00 венью с диапазоном до 22:00 уже закрыто
func IsOpenAt(week domain.WeekSchedule, at time.Time) bool {
	openMin, closeMin, ok := OpenRange(week.Entry(domain.DayOfWeekOf(at)))
	if !ok {
		return false
	}
	minute := at.Hour()*60 + at.Minute()
	return minute >= openMin && minute < closeMin
}

// RangeWithinDay сообщает, укладывается ли интервал [start, end) в часы работы дня
func RangeWithinDay(week domain.WeekSchedule, day domain.DayOfWeek, startMin, endMin int) bool {
	openMin, closeMin, ok := OpenRange(week.Entry(day))
	if !ok {
		return false
	}
	return startMin >= openMin && endMin <= closeMin
}

// SummarizeDay формирует текстовое описание дня: "closed", "open 24h"
// либо "HH:MM - HH:MM"
func SummarizeDay(entry *domain.WorkingHoursEntry) string {
	openMin, closeMin, ok := OpenRange(entry)
	if !ok {
		return summaryClosed
	}
	if openMin == dayStartMinutes && closeMin == dayEndMinutes {
		return summaryOpen24h
	}
	open, _ := types.FromMinutes(openMin)
	closeTime, _ := types.FromMinutes(closeMin)
	return fmt.Sprintf("%s - %s", open, closeTime)
}

// SummarizeWeek формирует описания всех семи дней в порядке локальной недели
func SummarizeWeek(week domain.WeekSchedule) WeekSummary {
	summary := make(WeekSummary, 0, domain.DaysPerWeek)
	for day := domain.DayOfWeek(0); day < domain.DaysPerWeek; day++ {
		summary = append(summary, DaySummary{
			DayOfWeek: day,
			Text:      SummarizeDay(week.Entry(day)),
		})
	}
	return summary
}
