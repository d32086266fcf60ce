package search_venue_stations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GSB-BookingService/internal/domain"
	storage "github.com/m04kA/GSB-BookingService/internal/infra/storage/venue"
	"github.com/m04kA/GSB-BookingService/internal/service/availability"
	"github.com/m04kA/GSB-BookingService/internal/service/schedule"
	"github.com/m04kA/GSB-BookingService/pkg/ptr"
)

// UseCase use case поиска доступных станций на одном венью
type UseCase struct {
	venueRepo     VenueRepository
	stationRepo   StationRepository
	bookingRepo   BookingRepository
	catalogClient CatalogServiceClient
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	venueRepo VenueRepository,
	stationRepo StationRepository,
	bookingRepo BookingRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		venueRepo:     venueRepo,
		stationRepo:   stationRepo,
		bookingRepo:   bookingRepo,
		catalogClient: catalogClient,
		logger:        logger,
	}
}

// Execute выполняет use case поиска станций венью
// Станция доступна, если венью открыто всё запрошенное окно и окно целиком
// свободно от активных броней
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SearchVenueStations: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("SearchVenueStations: venue=%s, date=%s, window=%s-%s, console=%d",
		req.Username, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.ConsoleID)

	venue, err := uc.venueRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrVenueNotFound) {
			uc.logger.Warn("SearchVenueStations: venue %s not found", req.Username)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("SearchVenueStations: failed to get venue %s: %v", req.Username, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}
	if !venue.IsBookable() {
		uc.logger.Warn("SearchVenueStations: venue %s is not bookable", req.Username)
		return nil, ErrVenueNotFound
	}

	week, err := uc.venueRepo.GetWeek(ctx, venue.ID)
	if err != nil {
		uc.logger.Error("SearchVenueStations: failed to get schedule for venue %d: %v", venue.ID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	day := domain.DayOfWeekOf(req.Date)
	windowOpen := schedule.RangeWithinDay(week, day, req.StartTime.MustMinutes(), req.EndTime.MustMinutes())

	stations, err := uc.stationRepo.ListByFilter(ctx, domain.StationFilter{
		VenueIDs:     []int64{venue.ID},
		ConsoleID:    ptr.Ptr(req.ConsoleID),
		GameID:       req.GameID,
		PlayersCount: req.PlayersCount,
	})
	if err != nil {
		uc.logger.Error("SearchVenueStations: failed to get stations: %v", err)
		return nil, fmt.Errorf("%w: failed to get stations: %v", ErrInternal, err)
	}

	stationIDs := make([]int64, len(stations))
	for i, s := range stations {
		stationIDs[i] = s.ID
	}

	occupiedByStation, err := uc.bookingRepo.GetOccupiedRangesByStationIDs(ctx, stationIDs, req.Date)
	if err != nil {
		uc.logger.Error("SearchVenueStations: failed to get occupied ranges: %v", err)
		return nil, fmt.Errorf("%w: failed to get occupied ranges: %v", ErrInternal, err)
	}

	gameNames := uc.fetchGameNames(ctx, stations)

	results := make([]StationResult, 0, len(stations))
	for _, st := range stations {
		isAvailable := windowOpen &&
			availability.RangeIsFree(occupiedByStation[st.ID], req.StartTime, req.EndTime)

		pricings := make([]PricingInfo, 0, len(st.Pricings))
		for _, p := range st.Pricings {
			pricings = append(pricings, PricingInfo{PlayersCount: p.PlayersCount, Price: p.Price})
		}

		games := make([]GameInfo, 0, len(st.GameIDs))
		for _, id := range st.GameIDs {
			games = append(games, GameInfo{ID: id, Name: gameNames[id]})
		}

		results = append(results, StationResult{
			ID:          st.ID,
			Name:        st.Name,
			ConsoleID:   st.ConsoleID,
			Capacity:    st.Capacity,
			IsAvailable: isAvailable,
			Pricings:    pricings,
			Games:       games,
		})
	}

	uc.logger.Info("SearchVenueStations: venue=%s matched %d stations", req.Username, len(results))

	return &Response{
		Stations: results,
		Meta:     Meta{Total: len(results)},
	}, nil
}

// fetchGameNames дочитывает названия игр из каталога одним батчем
// Недоступность каталога деградирует до пустых названий
func (uc *UseCase) fetchGameNames(ctx context.Context, stations []*domain.Station) map[int64]string {
	idSet := make(map[int64]bool)
	ids := make([]int64, 0)
	for _, st := range stations {
		for _, id := range st.GameIDs {
			if !idSet[id] {
				idSet[id] = true
				ids = append(ids, id)
			}
		}
	}

	names := make(map[int64]string, len(ids))
	games, err := uc.catalogClient.GetGamesByIDs(ctx, ids)
	if err != nil {
		uc.logger.Warn("SearchVenueStations: catalog degraded, games returned without names: %v", err)
		return names
	}
	for id, g := range games {
		names[id] = g.Name
	}
	return names
}

func validateRequest(req *Request) error {
	if req.Username == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.ConsoleID <= 0 {
		return fmt.Errorf("%w: consoleId must be positive", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}
	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}
	if req.PlayersCount != nil {
		if *req.PlayersCount < domain.MinPlayersCount || *req.PlayersCount > domain.MaxPlayersCount {
			return fmt.Errorf("%w: playerCount must be between %d and %d",
				ErrInvalidInput, domain.MinPlayersCount, domain.MaxPlayersCount)
		}
	}
	return nil
}
