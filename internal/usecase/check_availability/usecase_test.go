package check_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GSB-BookingService/internal/domain"
	storage "github.com/m04kA/GSB-BookingService/internal/infra/storage/station"
	"github.com/m04kA/GSB-BookingService/pkg/types"
)

type fakeStationRepo struct {
	stations map[int64]*domain.Station
}

func (f *fakeStationRepo) GetByID(_ context.Context, id int64) (*domain.Station, error) {
	s, ok := f.stations[id]
	if !ok {
		return nil, storage.ErrStationNotFound
	}
	return s, nil
}

type fakeBookingRepo struct {
	ranges []domain.OccupiedRange
}

func (f *fakeBookingRepo) GetOccupiedRanges(_ context.Context, _ int64, _ time.Time) ([]domain.OccupiedRange, error) {
	return f.ranges, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validRequest() *Request {
	return &Request{
		StationID: 1,
		Date:      time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "12:00",
	}
}

func newTestUseCase(ranges []domain.OccupiedRange) *UseCase {
	station := &domain.Station{ID: 1, IsActive: true, IsAccepted: true, Capacity: 4}
	return NewUseCase(
		&fakeStationRepo{stations: map[int64]*domain.Station{1: station}},
		&fakeBookingRepo{ranges: ranges},
		nopLogger{},
	)
}

func TestUseCase_Execute(t *testing.T) {
	t.Run("free multi-slot range", func(t *testing.T) {
		uc := newTestUseCase(nil)

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		assert.True(t, resp.IsAvailable)
	})

	t.Run("partial overlap blocks whole range", func(t *testing.T) {
		uc := newTestUseCase([]domain.OccupiedRange{
			{StationID: 1, Start: "11:30", End: "12:00"},
		})

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		assert.False(t, resp.IsAvailable)
	})

	t.Run("adjacent occupancy does not block", func(t *testing.T) {
		uc := newTestUseCase([]domain.OccupiedRange{
			{StationID: 1, Start: "09:30", End: "10:00"},
			{StationID: 1, Start: "12:00", End: "12:30"},
		})

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		assert.True(t, resp.IsAvailable)
	})

	t.Run("station not found", func(t *testing.T) {
		uc := NewUseCase(&fakeStationRepo{stations: map[int64]*domain.Station{}}, &fakeBookingRepo{}, nopLogger{})

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrStationNotFound)
	})

	t.Run("inactive station behaves as missing", func(t *testing.T) {
		station := &domain.Station{ID: 1, IsActive: false, IsAccepted: true}
		uc := NewUseCase(
			&fakeStationRepo{stations: map[int64]*domain.Station{1: station}},
			&fakeBookingRepo{}, nopLogger{},
		)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrStationNotFound)
	})
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc := newTestUseCase(nil)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "zero station", mutate: func(r *Request) { r.StationID = 0 }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "bad start format", mutate: func(r *Request) { r.StartTime = "1000" }},
		{name: "inverted range", mutate: func(r *Request) { r.StartTime = "12:00"; r.EndTime = "10:00" }},
		{name: "empty range", mutate: func(r *Request) { r.EndTime = r.StartTime }},
		{name: "off-grid start", mutate: func(r *Request) { r.StartTime = types.TimeString("10:15") }},
		{name: "off-grid end", mutate: func(r *Request) { r.EndTime = types.TimeString("11:45") }},
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
