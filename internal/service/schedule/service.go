package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GSB-BookingService/internal/domain"
	"github.com/m04kA/GSB-BookingService/internal/infra/storage/venue"
)

// Service сервис рабочих часов венью
type Service struct {
	venueRepo VenueRepository
	txManager TransactionManager
	log       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(venueRepo VenueRepository, txManager TransactionManager, log Logger) *Service {
	return &Service{
		venueRepo: venueRepo,
		txManager: txManager,
		log:       log,
	}
}

// GetWeek возвращает недельное расписание венью
// Несконфигурированные дни отсутствуют в мапе и трактуются как открытые 24 часа
func (s *Service) GetWeek(ctx context.Context, venueID int64) (domain.WeekSchedule, error) {
	if _, err := s.venueRepo.GetByID(ctx, venueID); err != nil {
		if errors.Is(err, venue.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("%w: GetWeek - fetch venue %d: %v", ErrInternal, venueID, err)
	}

	week, err := s.venueRepo.GetWeek(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - fetch schedule for venue %d: %v", ErrInternal, venueID, err)
	}

	return week, nil
}

// GetWeekSummary возвращает человекочитаемое описание недели венью
func (s *Service) GetWeekSummary(ctx context.Context, venueID int64) (WeekSummary, error) {
	week, err := s.GetWeek(ctx, venueID)
	if err != nil {
		return nil, err
	}
	return SummarizeWeek(week), nil
}

// ReplaceWeek атомарно заменяет недельное расписание венью
// Неделя обязана содержать ровно 7 записей, по одной на каждый день,
// каждая запись - ровно один режим: closed, open24h либо диапазон start < end
// Диапазоны через полночь не поддерживаются
func (s *Service) ReplaceWeek(ctx context.Context, venueID int64, entries []domain.WorkingHoursEntry) error {
	if err := validateWeek(entries); err != nil {
		return err
	}

	if _, err := s.venueRepo.GetByID(ctx, venueID); err != nil {
		if errors.Is(err, venue.ErrVenueNotFound) {
			return ErrVenueNotFound
		}
		return fmt.Errorf("%w: ReplaceWeek - fetch venue %d: %v", ErrInternal, venueID, err)
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.venueRepo.ReplaceWeek(ctx, venueID, entries)
	})
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeek - replace schedule for venue %d: %v", ErrInternal, venueID, err)
	}

	s.log.Info("Расписание венью %d обновлено", venueID)
	return nil
}

func validateWeek(entries []domain.WorkingHoursEntry) error {
	if len(entries) != domain.DaysPerWeek {
		return fmt.Errorf("%w: got %d", ErrWrongEntryCount, len(entries))
	}

	seen := make(map[domain.DayOfWeek]bool, domain.DaysPerWeek)
	for i := range entries {
		e := &entries[i]

		if e.DayOfWeek < 0 || e.DayOfWeek >= domain.DaysPerWeek {
			return fmt.Errorf("%w: day %d is out of range", ErrDuplicateDay, e.DayOfWeek)
		}
		if seen[e.DayOfWeek] {
			return fmt.Errorf("%w: day %d", ErrDuplicateDay, e.DayOfWeek)
		}
		seen[e.DayOfWeek] = true

		if err := validateEntry(e); err != nil {
			return err
		}
	}

	return nil
}

func validateEntry(e *domain.WorkingHoursEntry) error {
	hasRange := e.OpenTime != nil && e.CloseTime != nil

	modes := 0
	if e.IsClosed {
		modes++
	}
	if e.IsOpen24h {
		modes++
	}
	if hasRange {
		modes++
	}
	if modes != 1 {
		return fmt.Errorf("%w: day %d", ErrConflictingFlags, e.DayOfWeek)
	}

	if hasRange {
		if err := e.OpenTime.Validate(); err != nil {
			return fmt.Errorf("%w: day %d: %v", ErrInvalidRange, e.DayOfWeek, err)
		}
		if err := e.CloseTime.Validate(); err != nil {
			return fmt.Errorf("%w: day %d: %v", ErrInvalidRange, e.DayOfWeek, err)
		}
		if !e.OpenTime.IsBefore(*e.CloseTime) {
			return fmt.Errorf("%w: day %d: %s >= %s", ErrInvalidRange, e.DayOfWeek, *e.OpenTime, *e.CloseTime)
		}
	}

	return nil
}
