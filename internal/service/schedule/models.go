package schedule

import "github.com/m04kA/GSB-BookingService/internal/domain"

// DaySummary человекочитаемое описание дня недели для публичного ответа
type DaySummary struct {
	DayOfWeek domain.DayOfWeek
	Text      string
}

// WeekSummary описание всех семи дней в порядке локальной недели
type WeekSummary []DaySummary
