package update_working_hours

import (
	"github.com/m04kA/GSB-BookingService/internal/domain"
	"github.com/m04kA/GSB-BookingService/pkg/types"
)

// UpdateWorkingHoursRequest HTTP request model
// Неделя заменяется целиком: ровно 7 дней, по одному на каждый день
type UpdateWorkingHoursRequest struct {
	Days []DayRequest `json:"days"`
}

// DayRequest расписание одного дня недели
type DayRequest struct {
	DayOfWeek int     `json:"dayOfWeek"`
	IsClosed  bool    `json:"isClosed"`
	IsOpen24h bool    `json:"isOpen24h"`
	OpenTime  *string `json:"openTime,omitempty"`  // "09:00"
	CloseTime *string `json:"closeTime,omitempty"` // "22:00"
}

// ToEntries конвертирует HTTP запрос в доменные записи расписания
func (r *UpdateWorkingHoursRequest) ToEntries(venueID int64) ([]domain.WorkingHoursEntry, error) {
	entries := make([]domain.WorkingHoursEntry, 0, len(r.Days))
	for _, d := range r.Days {
		entry := domain.WorkingHoursEntry{
			VenueID:   venueID,
			DayOfWeek: domain.DayOfWeek(d.DayOfWeek),
			IsClosed:  d.IsClosed,
			IsOpen24h: d.IsOpen24h,
		}

		if d.OpenTime != nil {
			openTime, err := types.NewTimeStringFromString(*d.OpenTime)
			if err != nil {
				return nil, err
			}
			entry.OpenTime = &openTime
		}
		if d.CloseTime != nil {
			closeTime, err := types.NewTimeStringFromString(*d.CloseTime)
			if err != nil {
				return nil, err
			}
			entry.CloseTime = &closeTime
		}

		entries = append(entries, entry)
	}
	return entries, nil
}
