package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/GSB-BookingService/internal/domain"
	"github.com/m04kA/GSB-BookingService/internal/service/schedule"
	"github.com/m04kA/GSB-BookingService/pkg/types"
)

// Service расчёт доступности станций: рабочие часы венью, нарезка на слоты
// и наложение занятости
type Service struct {
	bookingRepo BookingRepository
	log         Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(bookingRepo BookingRepository, log Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		log:         log,
	}
}

// DaySlots возвращает размеченные слоты станции на дату с учётом рабочих
// часов венью
// В закрытый день возвращается пустой список
func (s *Service) DaySlots(ctx context.Context, week domain.WeekSchedule, stationID int64, date time.Time) ([]domain.SlotAvailability, error) {
	openMin, closeMin, open := schedule.OpenRange(week.Entry(domain.DayOfWeekOf(date)))
	if !open {
		return []domain.SlotAvailability{}, nil
	}

	occupied, err := s.bookingRepo.GetOccupiedRanges(ctx, stationID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: DaySlots - fetch occupied ranges for station %d: %v", ErrInternal, stationID, err)
	}

	return AnnotateSlots(GenerateSlots(openMin, closeMin), occupied), nil
}

// DaySlotsByStations батч-вариант для поиска: слоты набора станций одного
// венью на дату за один проход по занятости
func (s *Service) DaySlotsByStations(ctx context.Context, week domain.WeekSchedule, stationIDs []int64, date time.Time) (map[int64][]domain.SlotAvailability, error) {
	result := make(map[int64][]domain.SlotAvailability, len(stationIDs))

	openMin, closeMin, open := schedule.OpenRange(week.Entry(domain.DayOfWeekOf(date)))
	if !open {
		for _, id := range stationIDs {
			result[id] = []domain.SlotAvailability{}
		}
		return result, nil
	}

	occupiedByStation, err := s.bookingRepo.GetOccupiedRangesByStationIDs(ctx, stationIDs, date)
	if err != nil {
		return nil, fmt.Errorf("%w: DaySlotsByStations - fetch occupied ranges: %v", ErrInternal, err)
	}

	slots := GenerateSlots(openMin, closeMin)
	for _, id := range stationIDs {
		result[id] = AnnotateSlots(slots, occupiedByStation[id])
	}

	return result, nil
}

// IsRangeFree проверяет, свободен ли интервал [start, end) станции на дату
// Рабочие часы не учитываются - это отдельная проверка уровня usecase
func (s *Service) IsRangeFree(ctx context.Context, stationID int64, date time.Time, start, end types.TimeString) (bool, error) {
	if !start.IsBefore(end) {
		return false, fmt.Errorf("%w: %s >= %s", ErrInvalidRange, start, end)
	}

	occupied, err := s.bookingRepo.GetOccupiedRanges(ctx, stationID, date)
	if err != nil {
		return false, fmt.Errorf("%w: IsRangeFree - fetch occupied ranges for station %d: %v", ErrInternal, stationID, err)
	}

	return RangeIsFree(occupied, start, end), nil
}
