package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GSB-BookingService/internal/domain"
	storage "github.com/m04kA/GSB-BookingService/internal/infra/storage/station"
	"github.com/m04kA/GSB-BookingService/internal/service/availability"
)

// UseCase use case проверки доступности произвольного интервала станции
type UseCase struct {
	stationRepo StationRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(stationRepo StationRepository, bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		stationRepo: stationRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Execute выполняет use case проверки доступности
// Интервал обязан быть выровнен по 30-минутной сетке; частичное пересечение
// любого занятого слота делает весь интервал недоступным
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	station, err := uc.stationRepo.GetByID(ctx, req.StationID)
	if err != nil {
		if errors.Is(err, storage.ErrStationNotFound) {
			uc.logger.Warn("CheckAvailability: station id=%d not found", req.StationID)
			return nil, ErrStationNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get station id=%d: %v", req.StationID, err)
		return nil, fmt.Errorf("%w: failed to get station: %v", ErrInternal, err)
	}
	if !station.IsBookable() {
		uc.logger.Warn("CheckAvailability: station id=%d is not bookable", req.StationID)
		return nil, ErrStationNotFound
	}

	occupied, err := uc.bookingRepo.GetOccupiedRanges(ctx, req.StationID, req.Date)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get occupied ranges: %v", err)
		return nil, fmt.Errorf("%w: failed to get occupied ranges: %v", ErrInternal, err)
	}

	return &Response{
		IsAvailable: availability.RangeIsFree(occupied, req.StartTime, req.EndTime),
	}, nil
}

func validateRequest(req *Request) error {
	if req.StationID <= 0 {
		return fmt.Errorf("%w: stationID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: reservedDate is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	startMin := req.StartTime.MustMinutes()
	endMin := req.EndTime.MustMinutes()
	if startMin >= endMin {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}
	if startMin%domain.SlotDurationMinutes != 0 || endMin%domain.SlotDurationMinutes != 0 {
		return fmt.Errorf("%w: times must align to the %d-minute grid", ErrInvalidInput, domain.SlotDurationMinutes)
	}

	return nil
}
