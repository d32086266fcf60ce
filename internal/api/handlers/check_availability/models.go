package check_availability

import (
	"time"

	checkAvailability "github.com/m04kA/GSB-BookingService/internal/usecase/check_availability"
	"github.com/m04kA/GSB-BookingService/pkg/types"
)

// CheckAvailabilityRequest HTTP request model
type CheckAvailabilityRequest struct {
	StationID    int64  `json:"stationId"`
	ReservedDate string `json:"reservedDate"` // "2025-10-15"
	StartTime    string `json:"startTime"`    // "10:00"
	EndTime      string `json:"endTime"`      // "11:30"
}

// CheckAvailabilityResponse HTTP response model
type CheckAvailabilityResponse struct {
	IsAvailable bool `json:"isAvailable"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckAvailabilityRequest) ToUseCaseRequest(date time.Time) (*checkAvailability.Request, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &checkAvailability.Request{
		StationID: r.StationID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}
