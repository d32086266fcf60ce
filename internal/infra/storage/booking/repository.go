package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/GSB-BookingService/internal/domain"
	"github.com/m04kA/GSB-BookingService/pkg/dbmetrics"
	"github.com/m04kA/GSB-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/GSB-BookingService/pkg/types"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository единая точка чтения занятости станций
// Склеивает два вида записей бронирования (legacy reservations и sessions)
// в один список занятых интервалов: остальной движок не знает, какая
// таблица стоит за интервалом
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetOccupiedRanges получает занятые интервалы станции на дату
// Внутри транзакции добавляет FOR UPDATE к обоим запросам - это точка
// блокировки, сериализующая конкурентные бронирования одного слота
func (r *Repository) GetOccupiedRanges(ctx context.Context, stationID int64, date time.Time) ([]domain.OccupiedRange, error) {
	return r.getOccupiedRanges(ctx, []int64{stationID}, date)
}

// GetOccupiedRangesByStationIDs батч-вариант для поиска: занятость набора
// станций на дату двумя запросами вместо 2*N
func (r *Repository) GetOccupiedRangesByStationIDs(ctx context.Context, stationIDs []int64, date time.Time) (map[int64][]domain.OccupiedRange, error) {
	result := make(map[int64][]domain.OccupiedRange)
	if len(stationIDs) == 0 {
		return result, nil
	}

	ranges, err := r.getOccupiedRanges(ctx, stationIDs, date)
	if err != nil {
		return nil, err
	}

	for _, rg := range ranges {
		result[rg.StationID] = append(result[rg.StationID], rg)
	}
	return result, nil
}

func (r *Repository) getOccupiedRanges(ctx context.Context, stationIDs []int64, date time.Time) ([]domain.OccupiedRange, error) {
	reservations, err := r.reservationRanges(ctx, stationIDs, date)
	if err != nil {
		return nil, err
	}

	sessions, err := r.sessionRanges(ctx, stationIDs, date)
	if err != nil {
		return nil, err
	}

	return append(reservations, sessions...), nil
}

// reservationRanges занятые интервалы из legacy-таблицы reservations
func (r *Repository) reservationRanges(ctx context.Context, stationIDs []int64, date time.Time) ([]domain.OccupiedRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("station_id", "start_time", "end_time").
		From("reservations").
		Where("station_id = ANY(?)", pq.Array(stationIDs)).
		Where(squirrel.Eq{"reserved_date": dateOnly(date)}).
		Where(squirrel.Eq{"is_accepted": true}).
		OrderBy("station_id ASC, start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: reservationRanges - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: reservationRanges - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRanges(rows, "reservationRanges")
}

// sessionRanges занятые интервалы из sessions: только нетерминальные статусы
func (r *Repository) sessionRanges(ctx context.Context, stationIDs []int64, date time.Time) ([]domain.OccupiedRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatuses := make([]string, len(domain.ActiveSessionStatuses))
	for i, s := range domain.ActiveSessionStatuses {
		activeStatuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select("station_id", "start_minute", "end_minute").
		From("sessions").
		Where("station_id = ANY(?)", pq.Array(stationIDs)).
		Where(squirrel.Eq{"session_date": dateOnly(date)}).
		Where(squirrel.Eq{"status": activeStatuses}).
		OrderBy("station_id ASC, start_minute ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: sessionRanges - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: sessionRanges - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ranges := make([]domain.OccupiedRange, 0)
	for rows.Next() {
		var stationID int64
		var startMinute, endMinute int
		if err := rows.Scan(&stationID, &startMinute, &endMinute); err != nil {
			return nil, fmt.Errorf("%w: sessionRanges - scan row: %v", ErrScanRow, err)
		}

		start, err := types.FromMinutes(startMinute)
		if err != nil {
			return nil, fmt.Errorf("%w: sessionRanges - invalid start_minute %d: %v", ErrScanRow, startMinute, err)
		}
		end, err := types.FromMinutes(endMinute)
		if err != nil {
			return nil, fmt.Errorf("%w: sessionRanges - invalid end_minute %d: %v", ErrScanRow, endMinute, err)
		}

		ranges = append(ranges, domain.OccupiedRange{StationID: stationID, Start: start, End: end})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: sessionRanges - rows error: %v", ErrScanRow, err)
	}

	return ranges, nil
}

// CreateReservation создает legacy-запись бронирования (блокировку от венью)
func (r *Repository) CreateReservation(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"user_id",
			"venue_id",
			"station_id",
			"console_id",
			"reserved_date",
			"start_time",
			"end_time",
			"players_count",
			"price",
			"is_paid",
			"is_accepted",
		).
		Values(
			res.UserID,
			res.VenueID,
			res.StationID,
			res.ConsoleID,
			dateOnly(res.Date),
			res.StartTime,
			res.EndTime,
			res.PlayersCount,
			res.Price,
			res.IsPaid,
			res.IsAccepted,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateReservation - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateReservation - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

func scanRanges(rows *sql.Rows, caller string) ([]domain.OccupiedRange, error) {
	ranges := make([]domain.OccupiedRange, 0)

	for rows.Next() {
		var rg domain.OccupiedRange
		if err := rows.Scan(&rg.StationID, &rg.Start, &rg.End); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, caller, err)
		}
		ranges = append(ranges, rg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, caller, err)
	}

	return ranges, nil
}

// dateOnly обнуляет время, чтобы сравнение шло только по дате
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
