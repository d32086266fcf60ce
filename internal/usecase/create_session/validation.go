package create_session

import (
	"fmt"
	"time"

	"github.com/m04kA/GSB-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.StationID <= 0 {
		return fmt.Errorf("%w: stationID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if req.PlayersCount < domain.MinPlayersCount || req.PlayersCount > domain.MaxPlayersCount {
		return fmt.Errorf("%w: playersCount must be between %d and %d",
			ErrInvalidInput, domain.MinPlayersCount, domain.MaxPlayersCount)
	}

	return nil
}

// validateSlotAlignment проверяет, что интервал равен ровно одному слоту
// и выровнен по сетке :00/:30
func validateSlotAlignment(req *Request) error {
	startMin := req.StartTime.MustMinutes()
	endMin := req.EndTime.MustMinutes()

	if endMin-startMin != domain.SlotDurationMinutes {
		return fmt.Errorf("%w: range must be exactly %d minutes", ErrInvalidTimeSlot, domain.SlotDurationMinutes)
	}
	if startMin%domain.SlotDurationMinutes != 0 {
		return fmt.Errorf("%w: start must align to :00 or :30", ErrInvalidTimeSlot)
	}

	return nil
}

// validateNotInPast проверяет, что начало сессии не в прошлом
func validateNotInPast(req *Request, now time.Time) error {
	start := time.Date(
		req.Date.Year(), req.Date.Month(), req.Date.Day(),
		0, 0, 0, 0, now.Location(),
	).Add(time.Duration(req.StartTime.MustMinutes()) * time.Minute)

	if start.Before(now) {
		return ErrStartInPast
	}

	return nil
}

// validateStation проверяет станцию, вместимость и тариф, возвращает цену
func validateStation(station *domain.Station, playersCount int) (int64, error) {
	if !station.IsBookable() {
		return 0, ErrStationNotFound
	}

	if playersCount > station.Capacity {
		return 0, fmt.Errorf("%w: %d players, capacity %d", ErrCapacityExceeded, playersCount, station.Capacity)
	}

	tier := station.PriceFor(playersCount)
	if tier == nil {
		return 0, fmt.Errorf("%w: %d players", ErrNoPricingTier, playersCount)
	}

	return tier.Price, nil
}
