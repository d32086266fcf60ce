package search_open_venues

import (
	"fmt"

	"github.com/m04kA/GSB-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Latitude < -90 || req.Latitude > 90 {
		return fmt.Errorf("%w: latitude must be between -90 and 90", ErrInvalidInput)
	}
	if req.Longitude < -180 || req.Longitude > 180 {
		return fmt.Errorf("%w: longitude must be between -180 and 180", ErrInvalidInput)
	}

	if req.RadiusKm < domain.MinRadiusKm || req.RadiusKm > domain.MaxRadiusKm || req.RadiusKm%domain.RadiusKmStep != 0 {
		return fmt.Errorf("%w: radiusKm must be one of {%d, %d, ..., %d}",
			ErrInvalidInput, domain.MinRadiusKm, domain.MinRadiusKm+domain.RadiusKmStep, domain.MaxRadiusKm)
	}

	// Окно времени задаётся только целиком
	if (req.StartTime == nil) != (req.EndTime == nil) {
		return fmt.Errorf("%w: startTime and endTime must be provided together", ErrInvalidInput)
	}
	if req.StartTime != nil {
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
		}
		if err := req.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
		}
		if !req.StartTime.IsBefore(*req.EndTime) {
			return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
		}
	}

	if req.PlayersCount != nil {
		if *req.PlayersCount < domain.MinPlayersCount || *req.PlayersCount > domain.MaxPlayersCount {
			return fmt.Errorf("%w: playerCount must be between %d and %d",
				ErrInvalidInput, domain.MinPlayersCount, domain.MaxPlayersCount)
		}
	}

	if req.Limit != nil && (*req.Limit <= 0 || *req.Limit > domain.MaxSearchLimit) {
		return fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, domain.MaxSearchLimit)
	}

	return nil
}
