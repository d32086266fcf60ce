package search_open_venues

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/GSB-BookingService/internal/domain"
	"github.com/m04kA/GSB-BookingService/internal/service/availability"
	"github.com/m04kA/GSB-BookingService/internal/service/schedule"
	"github.com/m04kA/GSB-BookingService/pkg/geokit"
)

// UseCase use case поиска открытых венью поблизости
// Все справочные данные читаются батчами по наборам ID: один запрос венью,
// один по расписаниям, один по станциям, один по занятости
type UseCase struct {
	venueRepo     VenueRepository
	stationRepo   StationRepository
	bookingRepo   BookingRepository
	catalogClient CatalogServiceClient
	timeProvider  TimeProvider
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
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// rankedVenue венью-кандидат с точным расстоянием до центра поиска
type rankedVenue struct {
	venue          *domain.Venue
	distanceMeters float64
}

// Execute выполняет use case поиска открытых венью
// Без окна времени открытость не фильтрует, а только сортирует (открытые
// первыми); с окном венью без открытости или без полностью свободной станции
// выбрасываются из выдачи целиком
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SearchOpenVenues: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	date := now
	if req.Date != nil {
		date = *req.Date
	}
	day := domain.DayOfWeekOf(date)
	hasWindow := req.StartTime != nil

	uc.logger.Info("SearchOpenVenues: center=(%f, %f), radius=%dkm, date=%s, window=%v",
		req.Latitude, req.Longitude, req.RadiusKm, date.Format(domain.DateFormat), hasWindow)

	ranked, err := uc.findCandidates(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return &Response{Organizations: []Organization{}, Meta: Meta{Total: 0}}, nil
	}

	venueIDs := make([]int64, len(ranked))
	for i, rv := range ranked {
		venueIDs[i] = rv.venue.ID
	}

	dayEntries, err := uc.venueRepo.GetByVenueIDsAndDay(ctx, venueIDs, day)
	if err != nil {
		uc.logger.Error("SearchOpenVenues: failed to get day schedules: %v", err)
		return nil, fmt.Errorf("%w: failed to get day schedules: %v", ErrInternal, err)
	}

	weeks, err := uc.venueRepo.GetWeeksByVenueIDs(ctx, venueIDs)
	if err != nil {
		uc.logger.Error("SearchOpenVenues: failed to get week schedules: %v", err)
		return nil, fmt.Errorf("%w: failed to get week schedules: %v", ErrInternal, err)
	}

	stations, err := uc.stationRepo.ListByFilter(ctx, domain.StationFilter{
		VenueIDs:     venueIDs,
		ConsoleID:    req.ConsoleID,
		GameID:       req.GameID,
		PlayersCount: req.PlayersCount,
	})
	if err != nil {
		uc.logger.Error("SearchOpenVenues: failed to get stations: %v", err)
		return nil, fmt.Errorf("%w: failed to get stations: %v", ErrInternal, err)
	}

	stationsByVenue := make(map[int64][]*domain.Station)
	stationIDs := make([]int64, 0, len(stations))
	for _, s := range stations {
		stationsByVenue[s.VenueID] = append(stationsByVenue[s.VenueID], s)
		stationIDs = append(stationIDs, s.ID)
	}

	occupiedByStation, err := uc.bookingRepo.GetOccupiedRangesByStationIDs(ctx, stationIDs, date)
	if err != nil {
		uc.logger.Error("SearchOpenVenues: failed to get occupied ranges: %v", err)
		return nil, fmt.Errorf("%w: failed to get occupied ranges: %v", ErrInternal, err)
	}

	consoleNames := uc.fetchConsoleNames(ctx, stations)
	gameNames := uc.fetchGameNames(ctx, stations)

	organizations := make([]Organization, 0, len(ranked))
	for _, rv := range ranked {
		venueStations := stationsByVenue[rv.venue.ID]
		if len(venueStations) == 0 {
			continue
		}

		org, ok := uc.assembleOrganization(
			rv, venueStations, dayEntries[rv.venue.ID], weeks[rv.venue.ID],
			occupiedByStation, consoleNames, gameNames,
			req, date, now, hasWindow,
		)
		if !ok {
			continue
		}

		organizations = append(organizations, org)
	}

	// Без окна открытые венью поднимаются наверх, внутри групп порядок
	// по расстоянию сохраняется
	if !hasWindow {
		sort.SliceStable(organizations, func(i, j int) bool {
			return organizations[i].IsOpen && !organizations[j].IsOpen
		})
	}

	total := len(organizations)
	if req.Limit != nil && total > *req.Limit {
		organizations = organizations[:*req.Limit]
	}

	uc.logger.Info("SearchOpenVenues: found %d organizations, returning %d", total, len(organizations))

	return &Response{
		Organizations: organizations,
		Meta:          Meta{Total: total},
	}, nil
}

// findCandidates отбирает венью по bounding box в SQL и отсекает точным
// расстоянием по дуге большого круга, сортируя по удалённости
func (uc *UseCase) findCandidates(ctx context.Context, req *Request) ([]rankedVenue, error) {
	bbox := geokit.BoundingBox(req.Latitude, req.Longitude, float64(req.RadiusKm))

	candidates, err := uc.venueRepo.SearchCandidates(ctx, domain.VenueSearchFilter{
		MinLat:   bbox.MinLat,
		MaxLat:   bbox.MaxLat,
		MinLon:   bbox.MinLon,
		MaxLon:   bbox.MaxLon,
		Province: req.Province,
		City:     req.City,
	})
	if err != nil {
		uc.logger.Error("SearchOpenVenues: failed to search candidates: %v", err)
		return nil, fmt.Errorf("%w: failed to search candidates: %v", ErrInternal, err)
	}

	maxMeters := float64(req.RadiusKm) * 1000
	ranked := make([]rankedVenue, 0, len(candidates))
	for _, v := range candidates {
		if !v.HasCoordinates() {
			continue
		}
		d := geokit.DistanceMeters(req.Latitude, req.Longitude, *v.Latitude, *v.Longitude)
		if d > maxMeters {
			continue
		}
		ranked = append(ranked, rankedVenue{venue: v, distanceMeters: d})
	}

	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].distanceMeters < ranked[j].distanceMeters
	})

	return ranked, nil
}

// assembleOrganization собирает карточку венью для выдачи
// ok = false означает, что венью выбрасывается (не прошло оконные фильтры)
func (uc *UseCase) assembleOrganization(
	rv rankedVenue,
	venueStations []*domain.Station,
	dayEntry *domain.WorkingHoursEntry,
	week domain.WeekSchedule,
	occupiedByStation map[int64][]domain.OccupiedRange,
	consoleNames map[int64]string,
	gameNames map[int64]string,
	req *Request,
	date time.Time,
	now time.Time,
	hasWindow bool,
) (Organization, bool) {
	openMin, closeMin, openDay := schedule.OpenRange(dayEntry)

	var isOpen bool
	switch {
	case hasWindow:
		isOpen = openDay &&
			req.StartTime.MustMinutes() >= openMin &&
			req.EndTime.MustMinutes() <= closeMin
	case isSameDay(date, now):
		isOpen = schedule.IsOpenAt(week, now)
	default:
		isOpen = openDay
	}

	if hasWindow && !isOpen {
		return Organization{}, false
	}

	var daySlots []domain.Slot
	if openDay {
		daySlots = availability.GenerateSlots(openMin, closeMin)
	}

	stationResults := make([]StationResult, 0, len(venueStations))
	for _, st := range venueStations {
		occupied := occupiedByStation[st.ID]

		if hasWindow && !availability.RangeIsFree(occupied, *req.StartTime, *req.EndTime) {
			continue
		}

		stationResults = append(stationResults, buildStationResult(st, daySlots, occupied, gameNames))
	}

	if hasWindow && len(stationResults) == 0 {
		return Organization{}, false
	}

	return Organization{
		ID:             rv.venue.ID,
		Username:       rv.venue.Username,
		Name:           rv.venue.Name,
		Address:        rv.venue.Address,
		DistanceMeters: rv.distanceMeters,
		IsOpen:         isOpen,
		WorkingHours:   buildWeekSummary(week),
		Consoles:       buildConsoles(venueStations, consoleNames),
		Stations:       stationResults,
	}, true
}

func buildStationResult(st *domain.Station, daySlots []domain.Slot, occupied []domain.OccupiedRange, gameNames map[int64]string) StationResult {
	annotated := availability.AnnotateSlots(daySlots, occupied)

	slots := make([]SlotInfo, 0, len(annotated))
	for _, s := range annotated {
		slots = append(slots, SlotInfo{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Label:     s.Label,
			IsFree:    s.IsFree,
		})
	}

	pricings := make([]PricingInfo, 0, len(st.Pricings))
	for _, p := range st.Pricings {
		pricings = append(pricings, PricingInfo{PlayersCount: p.PlayersCount, Price: p.Price})
	}

	games := make([]GameInfo, 0, len(st.GameIDs))
	for _, id := range st.GameIDs {
		games = append(games, GameInfo{ID: id, Name: gameNames[id]})
	}

	return StationResult{
		ID:             st.ID,
		Name:           st.Name,
		ConsoleID:      st.ConsoleID,
		Capacity:       st.Capacity,
		Pricings:       pricings,
		Games:          games,
		AvailableSlots: slots,
	}
}

func buildWeekSummary(week domain.WeekSchedule) []DayHours {
	summary := schedule.SummarizeWeek(week)
	result := make([]DayHours, 0, len(summary))
	for _, d := range summary {
		result = append(result, DayHours{DayOfWeek: int(d.DayOfWeek), Text: d.Text})
	}
	return result
}

func buildConsoles(stations []*domain.Station, consoleNames map[int64]string) []ConsoleInfo {
	seen := make(map[int64]bool)
	consoles := make([]ConsoleInfo, 0)
	for _, st := range stations {
		if seen[st.ConsoleID] {
			continue
		}
		seen[st.ConsoleID] = true
		consoles = append(consoles, ConsoleInfo{ID: st.ConsoleID, Name: consoleNames[st.ConsoleID]})
	}
	return consoles
}

// fetchConsoleNames дочитывает названия консолей из каталога
// Недоступность каталога деградирует до пустых названий, поиск не падает
func (uc *UseCase) fetchConsoleNames(ctx context.Context, stations []*domain.Station) map[int64]string {
	names := make(map[int64]string)
	for _, st := range stations {
		if _, ok := names[st.ConsoleID]; ok {
			continue
		}
		console, err := uc.catalogClient.GetConsole(ctx, st.ConsoleID)
		if err != nil {
			uc.logger.Warn("SearchOpenVenues: failed to get console id=%d from catalog: %v", st.ConsoleID, err)
			names[st.ConsoleID] = ""
			continue
		}
		names[st.ConsoleID] = console.Name
	}
	return names
}

// fetchGameNames дочитывает названия игр из каталога одним батчем
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
		uc.logger.Warn("SearchOpenVenues: catalog degraded, games returned without names: %v", err)
		return names
	}
	for id, g := range games {
		names[id] = g.Name
	}
	return names
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
