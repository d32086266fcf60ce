package get_working_hours

import (
	"github.com/m04kA/GSB-BookingService/internal/domain"
	"github.com/m04kA/GSB-BookingService/internal/service/schedule"
)

// WorkingHoursResponse HTTP response model
type WorkingHoursResponse struct {
	Days []DayJSON `json:"days"`
}

// DayJSON расписание одного дня недели
// Несконфигурированный день отдаётся как открытый 24 часа
type DayJSON struct {
	DayOfWeek int     `json:"dayOfWeek"`
	IsClosed  bool    `json:"isClosed"`
	IsOpen24h bool    `json:"isOpen24h"`
	OpenTime  *string `json:"openTime,omitempty"`
	CloseTime *string `json:"closeTime,omitempty"`
	Text      string  `json:"text"`
}

// FromWeek конвертирует недельное расписание в HTTP response
func FromWeek(week domain.WeekSchedule) *WorkingHoursResponse {
	days := make([]DayJSON, 0, domain.DaysPerWeek)
	for day := domain.DayOfWeek(0); day < domain.DaysPerWeek; day++ {
		entry := week.Entry(day)

		d := DayJSON{
			DayOfWeek: int(day),
			IsOpen24h: entry == nil || entry.IsOpen24h,
			Text:      schedule.SummarizeDay(entry),
		}
		if entry != nil {
			d.IsClosed = entry.IsClosed
			if entry.HasRange() {
				d.IsOpen24h = false
				open := entry.OpenTime.String()
				closeTime := entry.CloseTime.String()
				d.OpenTime = &open
				d.CloseTime = &closeTime
			}
		}

		days = append(days, d)
	}

	return &WorkingHoursResponse{Days: days}
}
