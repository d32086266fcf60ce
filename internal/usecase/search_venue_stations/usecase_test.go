package search_venue_stations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GSB-BookingService/internal/domain"
	storage "github.com/m04kA/GSB-BookingService/internal/infra/storage/venue"
	"github.com/m04kA/GSB-BookingService/internal/integrations/catalogservice"
	"github.com/m04kA/GSB-BookingService/pkg/types"
)

type fakeVenueRepo struct {
	venues map[string]*domain.Venue
	week   domain.WeekSchedule
}

func (f *fakeVenueRepo) GetByUsername(_ context.Context, username string) (*domain.Venue, error) {
	v, ok := f.venues[username]
	if !ok {
		return nil, storage.ErrVenueNotFound
	}
	return v, nil
}

func (f *fakeVenueRepo) GetWeek(_ context.Context, _ int64) (domain.WeekSchedule, error) {
	if f.week == nil {
		return domain.WeekSchedule{}, nil
	}
	return f.week, nil
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
	games map[int64]string
}

func (f *fakeCatalog) GetGamesByIDs(_ context.Context, gameIDs []int64) (map[int64]*catalogservice.Game, error) {
	result := make(map[int64]*catalogservice.Game)
	for _, id := range gameIDs {
		if name, ok := f.games[id]; ok {
			result[id] = &catalogservice.Game{ID: id, Name: name}
		}
	}
	return result, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

func testStation(id int64, consoleID int64) *domain.Station {
	return &domain.Station{
		ID:         id,
		VenueID:    1,
		ConsoleID:  consoleID,
		Name:       "Station",
		Capacity:   4,
		IsActive:   true,
		IsAccepted: true,
		GameIDs:    []int64{100},
	}
}

func weekWithHours(open, close types.TimeString) domain.WeekSchedule {
	day := domain.DayOfWeekOf(testDate)
	return domain.WeekSchedule{
		day: {VenueID: 1, DayOfWeek: day, OpenTime: &open, CloseTime: &close},
	}
}

func validRequest() *Request {
	return &Request{
		Username:  "game-club",
		Date:      testDate,
		StartTime: "10:00",
		EndTime:   "12:00",
		ConsoleID: 5,
	}
}

func newTestUseCase(venues *fakeVenueRepo, stations *fakeStationRepo, bookings *fakeBookingRepo) *UseCase {
	return NewUseCase(venues, stations, bookings, &fakeCatalog{games: map[int64]string{100: "FC 26"}}, nopLogger{})
}

func bookableVenueRepo(week domain.WeekSchedule) *fakeVenueRepo {
	return &fakeVenueRepo{
		venues: map[string]*domain.Venue{
			"game-club": {ID: 1, Username: "game-club", IsActive: true},
		},
		week: week,
	}
}

func TestUseCase_Execute(t *testing.T) {
	t.Run("stations annotated with availability", func(t *testing.T) {
		uc := newTestUseCase(
			bookableVenueRepo(weekWithHours("09:00", "22:00")),
			&fakeStationRepo{stations: []*domain.Station{testStation(1, 5), testStation(2, 5)}},
			&fakeBookingRepo{ranges: map[int64][]domain.OccupiedRange{
				1: {{StationID: 1, Start: "11:00", End: "11:30"}},
			}},
		)

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		require.Len(t, resp.Stations, 2)
		assert.Equal(t, 2, resp.Meta.Total)

		assert.False(t, resp.Stations[0].IsAvailable)
		assert.True(t, resp.Stations[1].IsAvailable)
		assert.Equal(t, "FC 26", resp.Stations[0].Games[0].Name)
	})

	t.Run("window outside working hours makes all stations unavailable", func(t *testing.T) {
		uc := newTestUseCase(
			bookableVenueRepo(weekWithHours("11:00", "22:00")),
			&fakeStationRepo{stations: []*domain.Station{testStation(1, 5)}},
			&fakeBookingRepo{},
		)

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		require.Len(t, resp.Stations, 1)
		assert.False(t, resp.Stations[0].IsAvailable)
	})

	t.Run("console filter", func(t *testing.T) {
		uc := newTestUseCase(
			bookableVenueRepo(nil),
			&fakeStationRepo{stations: []*domain.Station{testStation(1, 5), testStation(2, 7)}},
			&fakeBookingRepo{},
		)

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		require.Len(t, resp.Stations, 1)
		assert.Equal(t, int64(1), resp.Stations[0].ID)
	})

	t.Run("unknown venue", func(t *testing.T) {
		uc := newTestUseCase(&fakeVenueRepo{venues: map[string]*domain.Venue{}}, &fakeStationRepo{}, &fakeBookingRepo{})

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrVenueNotFound)
	})

	t.Run("inactive venue behaves as missing", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeVenueRepo{venues: map[string]*domain.Venue{
				"game-club": {ID: 1, Username: "game-club", IsActive: false},
			}},
			&fakeStationRepo{}, &fakeBookingRepo{},
		)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrVenueNotFound)
	})
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc := newTestUseCase(bookableVenueRepo(nil), &fakeStationRepo{}, &fakeBookingRepo{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "empty username", mutate: func(r *Request) { r.Username = "" }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "zero console", mutate: func(r *Request) { r.ConsoleID = 0 }},
		{name: "bad time format", mutate: func(r *Request) { r.StartTime = "10-00" }},
		{name: "inverted window", mutate: func(r *Request) { r.StartTime = "12:00"; r.EndTime = "10:00" }},
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
