package search_open_venues

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GSB-BookingService/internal/domain"
	"github.com/m04kA/GSB-BookingService/internal/integrations/catalogservice"
	"github.com/m04kA/GSB-BookingService/pkg/ptr"
	"github.com/m04kA/GSB-BookingService/pkg/types"
)

type fakeVenueRepo struct {
	venues     []*domain.Venue
	dayEntries map[int64]*domain.WorkingHoursEntry
	weeks      map[int64]domain.WeekSchedule
}

func (f *fakeVenueRepo) SearchCandidates(_ context.Context, _ domain.VenueSearchFilter) ([]*domain.Venue, error) {
	return f.venues, nil
}

func (f *fakeVenueRepo) GetWeeksByVenueIDs(_ context.Context, _ []int64) (map[int64]domain.WeekSchedule, error) {
	if f.weeks == nil {
		return map[int64]domain.WeekSchedule{}, nil
	}
	return f.weeks, nil
}

func (f *fakeVenueRepo) GetByVenueIDsAndDay(_ context.Context, _ []int64, _ domain.DayOfWeek) (map[int64]*domain.WorkingHoursEntry, error) {
	if f.dayEntries == nil {
		return map[int64]*domain.WorkingHoursEntry{}, nil
	}
	return f.dayEntries, nil
}

type fakeStationRepo struct {
	stations []*domain.Station
}

func (f *fakeStationRepo) ListByFilter(_ context.Context, filter domain.StationFilter) ([]*domain.Station, error) {
	result := make([]*domain.Station, 0, len(f.stations))
	for _, s := range f.stations {
		if filter.ConsoleID != nil && s.ConsoleID != *filter.ConsoleID {
			continue
		}
		if filter.PlayersCount != nil && s.Capacity < *filter.PlayersCount {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

type fakeBookingRepo struct {
	ranges map[int64][]domain.OccupiedRange
}

func (f *fakeBookingRepo) GetOccupiedRangesByStationIDs(_ context.Context, stationIDs []int64, _ time.Time) (map[int64][]domain.OccupiedRange, error) {
	result := make(map[int64][]domain.OccupiedRange)
	for _, id := range stationIDs {
		if rs, ok := f.ranges[id]; ok {
			result[id] = rs
		}
	}
	return result, nil
}

type fakeCatalog struct {
	consoles map[int64]string
	games    map[int64]string
	down     bool
}

func (f *fakeCatalog) GetConsole(_ context.Context, consoleID int64) (*catalogservice.Console, error) {
	if f.down {
		return nil, errors.New("catalog unavailable")
	}
	name, ok := f.consoles[consoleID]
	if !ok {
		return nil, catalogservice.ErrConsoleNotFound
	}
	return &catalogservice.Console{ID: consoleID, Name: name}, nil
}

func (f *fakeCatalog) GetGamesByIDs(_ context.Context, gameIDs []int64) (map[int64]*catalogservice.Game, error) {
	if f.down {
		return nil, catalogservice.ErrServiceDegraded
	}
	result := make(map[int64]*catalogservice.Game)
	for _, id := range gameIDs {
		if name, ok := f.games[id]; ok {
			result[id] = &catalogservice.Game{ID: id, Name: name}
		}
	}
	return result, nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Центр поиска и два венью: near примерно в 2.2 км, far за радиусом 5 км
const (
	centerLat = 35.7000
	centerLon = 51.4000
)

func testVenue(id int64, username string, lat, lon float64) *domain.Venue {
	return &domain.Venue{
		ID:        id,
		Username:  username,
		Name:      username,
		Latitude:  &lat,
		Longitude: &lon,
		IsActive:  true,
	}
}

func testStation(id, venueID int64) *domain.Station {
	return &domain.Station{
		ID:         id,
		VenueID:    venueID,
		ConsoleID:  5,
		Name:       "PS5 Pro",
		Capacity:   4,
		IsActive:   true,
		IsAccepted: true,
		Pricings:   []domain.PricingTier{{StationID: id, PlayersCount: 2, Price: 100000}},
		GameIDs:    []int64{100},
	}
}

func validRequest() *Request {
	return &Request{
		Latitude:  centerLat,
		Longitude: centerLon,
		RadiusKm:  5,
	}
}

func newTestUseCase(venues *fakeVenueRepo, stations *fakeStationRepo, bookings *fakeBookingRepo, catalog *fakeCatalog) *UseCase {
	uc := NewUseCase(venues, stations, bookings, catalog, nopLogger{})
	uc.timeProvider = fixedTime{now: time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)}
	return uc
}

func TestUseCase_Execute(t *testing.T) {
	near := testVenue(1, "near-club", 35.7200, 51.4000)  // ~2.2 км
	far := testVenue(2, "far-club", 35.7900, 51.4000)    // ~10 км, за радиусом
	second := testVenue(3, "second", 35.7100, 51.4000)   // ~1.1 км

	t.Run("radius cutoff and distance ordering", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeVenueRepo{venues: []*domain.Venue{near, far, second}},
			&fakeStationRepo{stations: []*domain.Station{testStation(1, 1), testStation(2, 3)}},
			&fakeBookingRepo{},
			&fakeCatalog{consoles: map[int64]string{5: "PlayStation 5"}, games: map[int64]string{100: "FC 26"}},
		)

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)

		require.Len(t, resp.Organizations, 2)
		assert.Equal(t, 2, resp.Meta.Total)
		// Ближайшее венью первым
		assert.Equal(t, "second", resp.Organizations[0].Username)
		assert.Equal(t, "near-club", resp.Organizations[1].Username)
		assert.Less(t, resp.Organizations[0].DistanceMeters, resp.Organizations[1].DistanceMeters)
	})

	t.Run("venue without stations is dropped", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeVenueRepo{venues: []*domain.Venue{near, second}},
			&fakeStationRepo{stations: []*domain.Station{testStation(1, 1)}},
			&fakeBookingRepo{},
			&fakeCatalog{},
		)

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		require.Len(t, resp.Organizations, 1)
		assert.Equal(t, "near-club", resp.Organizations[0].Username)
	})

	t.Run("catalog degradation keeps results with empty names", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeVenueRepo{venues: []*domain.Venue{near}},
			&fakeStationRepo{stations: []*domain.Station{testStation(1, 1)}},
			&fakeBookingRepo{},
			&fakeCatalog{down: true},
		)

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		require.Len(t, resp.Organizations, 1)

		org := resp.Organizations[0]
		require.Len(t, org.Consoles, 1)
		assert.Empty(t, org.Consoles[0].Name)
		require.Len(t, org.Stations, 1)
		require.Len(t, org.Stations[0].Games, 1)
		assert.Empty(t, org.Stations[0].Games[0].Name)
	})

	t.Run("limit caps organizations but not total", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeVenueRepo{venues: []*domain.Venue{near, second}},
			&fakeStationRepo{stations: []*domain.Station{testStation(1, 1), testStation(2, 3)}},
			&fakeBookingRepo{},
			&fakeCatalog{},
		)

		req := validRequest()
		req.Limit = ptr.Ptr(1)

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Len(t, resp.Organizations, 1)
		assert.Equal(t, 2, resp.Meta.Total)
	})

	t.Run("empty area", func(t *testing.T) {
		uc := newTestUseCase(&fakeVenueRepo{}, &fakeStationRepo{}, &fakeBookingRepo{}, &fakeCatalog{})

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Empty(t, resp.Organizations)
		assert.Zero(t, resp.Meta.Total)
	})
}

func TestUseCase_Execute_TimeWindow(t *testing.T) {
	near := testVenue(1, "near-club", 35.7200, 51.4000)
	date := time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC)
	day := domain.DayOfWeekOf(date)

	open, close := types.TimeString("09:00"), types.TimeString("22:00")
	dayEntry := &domain.WorkingHoursEntry{VenueID: 1, DayOfWeek: day, OpenTime: &open, CloseTime: &close}

	windowRequest := func(start, end types.TimeString) *Request {
		req := validRequest()
		req.Date = &date
		req.StartTime = &start
		req.EndTime = &end
		return req
	}

	t.Run("window within hours and free station", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeVenueRepo{
				venues:     []*domain.Venue{near},
				dayEntries: map[int64]*domain.WorkingHoursEntry{1: dayEntry},
			},
			&fakeStationRepo{stations: []*domain.Station{testStation(1, 1)}},
			&fakeBookingRepo{},
			&fakeCatalog{},
		)

		resp, err := uc.Execute(context.Background(), windowRequest("10:00", "12:00"))
		require.NoError(t, err)
		require.Len(t, resp.Organizations, 1)
		assert.True(t, resp.Organizations[0].IsOpen)
	})

	t.Run("window outside working hours drops venue", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeVenueRepo{
				venues:     []*domain.Venue{near},
				dayEntries: map[int64]*domain.WorkingHoursEntry{1: dayEntry},
			},
			&fakeStationRepo{stations: []*domain.Station{testStation(1, 1)}},
			&fakeBookingRepo{},
			&fakeCatalog{},
		)

		resp, err := uc.Execute(context.Background(), windowRequest("08:00", "10:00"))
		require.NoError(t, err)
		assert.Empty(t, resp.Organizations)
	})

	t.Run("fully occupied stations drop venue", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeVenueRepo{
				venues:     []*domain.Venue{near},
				dayEntries: map[int64]*domain.WorkingHoursEntry{1: dayEntry},
			},
			&fakeStationRepo{stations: []*domain.Station{testStation(1, 1)}},
			&fakeBookingRepo{ranges: map[int64][]domain.OccupiedRange{
				1: {{StationID: 1, Start: "10:30", End: "11:00"}},
			}},
			&fakeCatalog{},
		)

		resp, err := uc.Execute(context.Background(), windowRequest("10:00", "12:00"))
		require.NoError(t, err)
		assert.Empty(t, resp.Organizations)
	})

	t.Run("occupied station is dropped but free one keeps venue", func(t *testing.T) {
		busy := testStation(1, 1)
		free := testStation(2, 1)

		uc := newTestUseCase(
			&fakeVenueRepo{
				venues:     []*domain.Venue{near},
				dayEntries: map[int64]*domain.WorkingHoursEntry{1: dayEntry},
			},
			&fakeStationRepo{stations: []*domain.Station{busy, free}},
			&fakeBookingRepo{ranges: map[int64][]domain.OccupiedRange{
				1: {{StationID: 1, Start: "10:30", End: "11:00"}},
			}},
			&fakeCatalog{},
		)

		resp, err := uc.Execute(context.Background(), windowRequest("10:00", "12:00"))
		require.NoError(t, err)
		require.Len(t, resp.Organizations, 1)
		require.Len(t, resp.Organizations[0].Stations, 1)
		assert.Equal(t, int64(2), resp.Organizations[0].Stations[0].ID)
	})

	t.Run("closed day with window drops venue", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeVenueRepo{
				venues: []*domain.Venue{near},
				dayEntries: map[int64]*domain.WorkingHoursEntry{
					1: {VenueID: 1, DayOfWeek: day, IsClosed: true},
				},
			},
			&fakeStationRepo{stations: []*domain.Station{testStation(1, 1)}},
			&fakeBookingRepo{},
			&fakeCatalog{},
		)

		resp, err := uc.Execute(context.Background(), windowRequest("10:00", "12:00"))
		require.NoError(t, err)
		assert.Empty(t, resp.Organizations)
	})
}

func TestUseCase_Execute_OpenFirstOrdering(t *testing.T) {
	// Без окна: закрытое ближнее венью уходит вниз, открытое дальнее наверх
	nearClosed := testVenue(1, "near-closed", 35.7100, 51.4000)
	farOpen := testVenue(2, "far-open", 35.7200, 51.4000)

	// Запрос на конкретную дату (не сегодня): открытость решает день целиком
	date := time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC)
	day := domain.DayOfWeekOf(date)

	uc := newTestUseCase(
		&fakeVenueRepo{
			venues: []*domain.Venue{nearClosed, farOpen},
			dayEntries: map[int64]*domain.WorkingHoursEntry{
				1: {VenueID: 1, DayOfWeek: day, IsClosed: true},
				2: {VenueID: 2, DayOfWeek: day, IsOpen24h: true},
			},
		},
		&fakeStationRepo{stations: []*domain.Station{testStation(1, 1), testStation(2, 2)}},
		&fakeBookingRepo{},
		&fakeCatalog{},
	)

	req := validRequest()
	req.Date = &date

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Organizations, 2)
	assert.Equal(t, "far-open", resp.Organizations[0].Username)
	assert.True(t, resp.Organizations[0].IsOpen)
	assert.Equal(t, "near-closed", resp.Organizations[1].Username)
	assert.False(t, resp.Organizations[1].IsOpen)

	// Закрытый день даёт пустой список слотов
	assert.Empty(t, resp.Organizations[1].Stations[0].AvailableSlots)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeVenueRepo{}, &fakeStationRepo{}, &fakeBookingRepo{}, &fakeCatalog{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "latitude out of range", mutate: func(r *Request) { r.Latitude = 91 }},
		{name: "longitude out of range", mutate: func(r *Request) { r.Longitude = -181 }},
		{name: "radius below minimum", mutate: func(r *Request) { r.RadiusKm = 4 }},
		{name: "radius above maximum", mutate: func(r *Request) { r.RadiusKm = 35 }},
		{name: "radius off step", mutate: func(r *Request) { r.RadiusKm = 7 }},
		{name: "start without end", mutate: func(r *Request) {
			r.StartTime = ptr.Ptr(types.TimeString("10:00"))
		}},
		{name: "inverted window", mutate: func(r *Request) {
			r.StartTime = ptr.Ptr(types.TimeString("12:00"))
			r.EndTime = ptr.Ptr(types.TimeString("10:00"))
		}},
		{name: "players out of range", mutate: func(r *Request) { r.PlayersCount = ptr.Ptr(21) }},
		{name: "zero limit", mutate: func(r *Request) { r.Limit = ptr.Ptr(0) }},
		{name: "limit above maximum", mutate: func(r *Request) { r.Limit = ptr.Ptr(101) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
