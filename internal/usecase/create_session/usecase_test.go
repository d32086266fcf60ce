package create_session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
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

type fakeSessionRepo struct {
	createdSession *domain.Session
	createdInvoice *domain.Invoice
}

func (f *fakeSessionRepo) Create(_ context.Context, s *domain.Session) (*domain.Session, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = time.Now()
	f.createdSession = s
	return s, nil
}

func (f *fakeSessionRepo) CreateInvoice(_ context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	f.createdInvoice = inv
	return inv, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

func bookableStation() *domain.Station {
	return &domain.Station{
		ID:         1,
		VenueID:    10,
		ConsoleID:  5,
		Capacity:   4,
		IsActive:   true,
		IsAccepted: true,
		Pricings: []domain.PricingTier{
			{StationID: 1, PlayersCount: 2, Price: 100000},
		},
	}
}

func newTestUseCase(stations *fakeStationRepo, bookings *fakeBookingRepo, sessions *fakeSessionRepo) *UseCase {
	uc := NewUseCase(stations, bookings, sessions, fakeTxManager{}, 0.09, 15*time.Minute, nopLogger{})
	uc.timeProvider = fixedTime{now: time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)}
	return uc
}

func validRequest() *Request {
	return &Request{
		UserID:       42,
		StationID:    1,
		Date:         time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:    "10:00",
		EndTime:      "10:30",
		PlayersCount: 2,
	}
}

func TestUseCase_Execute(t *testing.T) {
	t.Run("creates session and invoice with tax", func(t *testing.T) {
		sessions := &fakeSessionRepo{}
		uc := newTestUseCase(
			&fakeStationRepo{stations: map[int64]*domain.Station{1: bookableStation()}},
			&fakeBookingRepo{},
			sessions,
		)

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)

		assert.Equal(t, int64(100000), resp.PriceBeforeTax)
		assert.Equal(t, int64(9000), resp.Tax)
		assert.Equal(t, int64(109000), resp.TotalPrice)
		assert.Equal(t, "pending", resp.Session.Status)

		require.NotNil(t, sessions.createdSession)
		assert.Equal(t, 600, sessions.createdSession.StartMinute)
		assert.Equal(t, 630, sessions.createdSession.EndMinute)
		assert.Equal(t, domain.SessionPending, sessions.createdSession.Status)

		// Срок удержания: now + 15 минут, у счёта тот же
		wantExpire := time.Date(2025, 10, 15, 8, 15, 0, 0, time.UTC)
		assert.Equal(t, wantExpire, sessions.createdSession.ExpireAt)
		require.NotNil(t, sessions.createdInvoice)
		assert.Equal(t, wantExpire, sessions.createdInvoice.ExpireAt)
		assert.Equal(t, sessions.createdSession.ID, sessions.createdInvoice.SessionID)
	})

	t.Run("occupied slot yields conflict", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeStationRepo{stations: map[int64]*domain.Station{1: bookableStation()}},
			&fakeBookingRepo{ranges: []domain.OccupiedRange{
				{StationID: 1, Start: "10:00", End: "10:30"},
			}},
			&fakeSessionRepo{},
		)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrSlotConflict)
	})

	t.Run("adjacent range is not a conflict", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeStationRepo{stations: map[int64]*domain.Station{1: bookableStation()}},
			&fakeBookingRepo{ranges: []domain.OccupiedRange{
				{StationID: 1, Start: "09:30", End: "10:00"},
				{StationID: 1, Start: "10:30", End: "11:00"},
			}},
			&fakeSessionRepo{},
		)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.NoError(t, err)
	})

	t.Run("station not found", func(t *testing.T) {
		uc := newTestUseCase(&fakeStationRepo{stations: map[int64]*domain.Station{}}, &fakeBookingRepo{}, &fakeSessionRepo{})

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrStationNotFound)
	})

	t.Run("unbookable station behaves as missing", func(t *testing.T) {
		station := bookableStation()
		station.IsAccepted = false
		uc := newTestUseCase(
			&fakeStationRepo{stations: map[int64]*domain.Station{1: station}},
			&fakeBookingRepo{}, &fakeSessionRepo{},
		)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrStationNotFound)
	})

	t.Run("capacity exceeded", func(t *testing.T) {
		sessions := &fakeSessionRepo{}
		uc := newTestUseCase(
			&fakeStationRepo{stations: map[int64]*domain.Station{1: bookableStation()}},
			&fakeBookingRepo{}, sessions,
		)

		req := validRequest()
		req.PlayersCount = 5

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrCapacityExceeded)
		// Отказ до какой-либо записи
		assert.Nil(t, sessions.createdSession)
	})

	t.Run("no pricing tier for players count", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeStationRepo{stations: map[int64]*domain.Station{1: bookableStation()}},
			&fakeBookingRepo{}, &fakeSessionRepo{},
		)

		req := validRequest()
		req.PlayersCount = 3

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrNoPricingTier)
	})

	t.Run("start in past", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeStationRepo{stations: map[int64]*domain.Station{1: bookableStation()}},
			&fakeBookingRepo{}, &fakeSessionRepo{},
		)

		req := validRequest()
		req.StartTime = "07:00"
		req.EndTime = "07:30"

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrStartInPast)
	})
}

func TestUseCase_Execute_SlotAlignment(t *testing.T) {
	uc := newTestUseCase(
		&fakeStationRepo{stations: map[int64]*domain.Station{1: bookableStation()}},
		&fakeBookingRepo{}, &fakeSessionRepo{},
	)

	tests := []struct {
		name  string
		start types.TimeString
		end   types.TimeString
	}{
		{name: "longer than one slot", start: "10:00", end: "11:00"},
		{name: "shorter than one slot", start: "10:00", end: "10:15"},
		{name: "off-grid start", start: "10:15", end: "10:45"},
		{name: "inverted", start: "10:30", end: "10:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.StartTime = tt.start
			req.EndTime = tt.end

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidTimeSlot)
		})
	}
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc := newTestUseCase(
		&fakeStationRepo{stations: map[int64]*domain.Station{1: bookableStation()}},
		&fakeBookingRepo{}, &fakeSessionRepo{},
	)

	t.Run("missing user", func(t *testing.T) {
		req := validRequest()
		req.UserID = 0
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("players out of range", func(t *testing.T) {
		req := validRequest()
		req.PlayersCount = 21
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("bad time format", func(t *testing.T) {
		req := validRequest()
		req.StartTime = "25:99"
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestUseCase_Preview(t *testing.T) {
	uc := newTestUseCase(
		&fakeStationRepo{stations: map[int64]*domain.Station{1: bookableStation()}},
		&fakeBookingRepo{ranges: []domain.OccupiedRange{
			{StationID: 1, Start: "10:00", End: "10:30"},
		}},
		&fakeSessionRepo{},
	)

	t.Run("occupied slot is reported, price still computed", func(t *testing.T) {
		resp, err := uc.Preview(context.Background(), validRequest())
		require.NoError(t, err)
		assert.False(t, resp.IsAvailable)
		assert.Equal(t, int64(100000), resp.PriceBeforeTax)
		assert.Equal(t, int64(9000), resp.Tax)
		assert.Equal(t, int64(109000), resp.TotalPrice)
	})

	t.Run("free slot", func(t *testing.T) {
		req := validRequest()
		req.StartTime = "11:00"
		req.EndTime = "11:30"

		resp, err := uc.Preview(context.Background(), req)
		require.NoError(t, err)
		assert.True(t, resp.IsAvailable)
	})
}

func TestComputeTax(t *testing.T) {
	assert.Equal(t, int64(9000), computeTax(100000, 0.09))
	assert.Equal(t, int64(0), computeTax(100000, 0))
	// Округление до ближайшего целого
	assert.Equal(t, int64(5), computeTax(50, 0.09))
	assert.Equal(t, int64(4), computeTax(49, 0.09))
}
