package create_block

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/GSB-BookingService/internal/domain"
	storage "github.com/m04kA/GSB-BookingService/internal/infra/storage/station"
	"github.com/m04kA/GSB-BookingService/internal/service/availability"
)

// UseCase use case блокировки слота от имени венью
// Пишет в legacy-таблицу reservations под той же транзакционной дисциплиной,
// что и создание сессий: блокировка и клиентская бронь конкурируют честно
type UseCase struct {
	stationRepo  StationRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	stationRepo StationRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		stationRepo:  stationRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания блокировки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBlock: venue=%d, station=%d, date=%s, time=%s-%s",
		req.VenueID, req.StationID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBlock: validation failed: %v", err)
		return nil, err
	}

	if err := validateNotInPast(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBlock: start in past: station=%d date=%s time=%s",
			req.StationID, req.Date.Format(domain.DateFormat), req.StartTime)
		return nil, err
	}

	station, err := uc.stationRepo.GetByID(ctx, req.StationID)
	if err != nil {
		if errors.Is(err, storage.ErrStationNotFound) {
			uc.logger.Warn("CreateBlock: station id=%d not found", req.StationID)
			return nil, ErrStationNotFound
		}
		uc.logger.Error("CreateBlock: failed to get station id=%d: %v", req.StationID, err)
		return nil, fmt.Errorf("%w: failed to get station: %v", ErrInternal, err)
	}

	price, err := validateStation(station, req)
	if err != nil {
		uc.logger.Warn("CreateBlock: station validation failed: %v", err)
		return nil, err
	}

	reservation := &domain.Reservation{
		UserID:       req.UserID,
		VenueID:      req.VenueID,
		StationID:    req.StationID,
		ConsoleID:    req.ConsoleID,
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		PlayersCount: req.PlayersCount,
		Price:        price,
		IsPaid:       false,
		// Блокировка от венью вступает в силу сразу, без модерации
		IsAccepted: true,
	}

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		occupied, err := uc.bookingRepo.GetOccupiedRanges(txCtx, req.StationID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBlock: failed to get occupied ranges: %v", err)
			return fmt.Errorf("%w: failed to get occupied ranges: %v", ErrInternal, err)
		}

		if !availability.RangeIsFree(occupied, req.StartTime, req.EndTime) {
			uc.logger.Warn("CreateBlock: slot %s-%s already taken on station=%d", req.StartTime, req.EndTime, req.StationID)
			return ErrSlotConflict
		}

		created, err := uc.bookingRepo.CreateReservation(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateBlock: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}
		reservation = created

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBlock: created reservation id=%d", reservation.ID)

	return &Response{
		ID:           reservation.ID,
		UserID:       reservation.UserID,
		VenueID:      reservation.VenueID,
		StationID:    reservation.StationID,
		ConsoleID:    reservation.ConsoleID,
		Date:         reservation.Date,
		StartTime:    reservation.StartTime,
		EndTime:      reservation.EndTime,
		PlayersCount: reservation.PlayersCount,
		Price:        reservation.Price,
		IsPaid:       reservation.IsPaid,
		IsAccepted:   reservation.IsAccepted,
		CreatedAt:    reservation.CreatedAt,
	}, nil
}

func validateRequest(req *Request) error {
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}
	if req.StationID <= 0 {
		return fmt.Errorf("%w: stationID must be positive", ErrInvalidInput)
	}
	if req.ConsoleID <= 0 {
		return fmt.Errorf("%w: consoleID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
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
	if req.OverridePrice != nil && *req.OverridePrice < 0 {
		return fmt.Errorf("%w: override price must be non-negative", ErrInvalidInput)
	}

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

// validateStation проверяет принадлежность станции заявленным венью и консоли
// и возвращает цену: явную, если задана, иначе из тарифа
func validateStation(station *domain.Station, req *Request) (int64, error) {
	if !station.IsBookable() {
		return 0, ErrStationNotFound
	}
	if station.VenueID != req.VenueID || station.ConsoleID != req.ConsoleID {
		return 0, ErrStationMismatch
	}
	if req.PlayersCount > station.Capacity {
		return 0, fmt.Errorf("%w: %d players, capacity %d", ErrCapacityExceeded, req.PlayersCount, station.Capacity)
	}

	if req.OverridePrice != nil {
		return *req.OverridePrice, nil
	}

	tier := station.PriceFor(req.PlayersCount)
	if tier == nil {
		return 0, fmt.Errorf("%w: %d players", ErrNoPricingTier, req.PlayersCount)
	}
	return tier.Price, nil
}
