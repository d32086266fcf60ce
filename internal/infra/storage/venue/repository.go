package venue

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/GSB-BookingService/internal/domain"
	"github.com/m04kA/GSB-BookingService/pkg/dbmetrics"
	"github.com/m04kA/GSB-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/GSB-BookingService/pkg/types"
)

// Repository репозиторий венью и их расписаний
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория венью
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var venueColumnList = []string{
	"id", "username", "name", "province", "city", "address",
	"latitude", "longitude", "is_active", "deleted_at", "created_at", "updated_at",
}

// SearchCandidates возвращает активные венью внутри bounding box
// Грубая фильтрация по прямоугольнику выполняется в SQL; точная отсечка
// по радиусу и сортировка по расстоянию делаются вызывающим кодом
func (r *Repository) SearchCandidates(ctx context.Context, filter domain.VenueSearchFilter) ([]*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(venueColumnList...).
		From("venues").
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.Eq{"deleted_at": nil}).
		Where(squirrel.NotEq{"latitude": nil}).
		Where(squirrel.NotEq{"longitude": nil}).
		Where(squirrel.GtOrEq{"latitude": filter.MinLat}).
		Where(squirrel.LtOrEq{"latitude": filter.MaxLat}).
		Where(squirrel.GtOrEq{"longitude": filter.MinLon}).
		Where(squirrel.LtOrEq{"longitude": filter.MaxLon})

	if filter.Province != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"province": *filter.Province})
	}
	if filter.City != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"city": *filter.City})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: SearchCandidates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: SearchCandidates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanVenues(rows)
}

// GetByID получает венью по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	return r.getByWhere(ctx, squirrel.Eq{"id": id})
}

// GetByUsername получает венью по публичному идентификатору
func (r *Repository) GetByUsername(ctx context.Context, username string) (*domain.Venue, error) {
	return r.getByWhere(ctx, squirrel.Eq{"username": username})
}

func (r *Repository) getByWhere(ctx context.Context, where squirrel.Eq) (*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(venueColumnList...).
		From("venues").
		Where(where).
		Where(squirrel.Eq{"deleted_at": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getByWhere - build select query: %v", ErrBuildQuery, err)
	}

	var v domain.Venue
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&v.ID,
		&v.Username,
		&v.Name,
		&v.Province,
		&v.City,
		&v.Address,
		&v.Latitude,
		&v.Longitude,
		&v.IsActive,
		&v.DeletedAt,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getByWhere - scan venue: %v", ErrScanRow, err)
	}

	v.CreatedAt = createdAt.Time
	v.UpdatedAt = updatedAt.Time

	return &v, nil
}

// GetWeek получает расписание венью на всю неделю
// Дни без записи отсутствуют в мапе (политика default-open решается выше)
func (r *Repository) GetWeek(ctx context.Context, venueID int64) (domain.WeekSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "venue_id", "day_of_week", "is_closed", "is_open_24h", "open_time", "close_time",
	).
		From("venue_working_hours").
		Where(squirrel.Eq{"venue_id": venueID}).
		OrderBy("day_of_week ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedule := make(domain.WeekSchedule)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		schedule[entry.DayOfWeek] = entry
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeek - rows error: %v", ErrScanRow, err)
	}

	return schedule, nil
}

// GetByVenueIDsAndDay получает записи расписания на один день недели
// сразу для набора венью (одним запросом, без фан-аута)
func (r *Repository) GetByVenueIDsAndDay(ctx context.Context, venueIDs []int64, day domain.DayOfWeek) (map[int64]*domain.WorkingHoursEntry, error) {
	result := make(map[int64]*domain.WorkingHoursEntry)
	if len(venueIDs) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "venue_id", "day_of_week", "is_closed", "is_open_24h", "open_time", "close_time",
	).
		From("venue_working_hours").
		Where("venue_id = ANY(?)", pq.Array(venueIDs)).
		Where(squirrel.Eq{"day_of_week": int(day)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueIDsAndDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueIDsAndDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result[entry.VenueID] = entry
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByVenueIDsAndDay - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// GetWeeksByVenueIDs получает недельные расписания набора венью одним запросом
func (r *Repository) GetWeeksByVenueIDs(ctx context.Context, venueIDs []int64) (map[int64]domain.WeekSchedule, error) {
	result := make(map[int64]domain.WeekSchedule)
	if len(venueIDs) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "venue_id", "day_of_week", "is_closed", "is_open_24h", "open_time", "close_time",
	).
		From("venue_working_hours").
		Where("venue_id = ANY(?)", pq.Array(venueIDs)).
		OrderBy("venue_id ASC, day_of_week ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeksByVenueIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeksByVenueIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		if result[entry.VenueID] == nil {
			result[entry.VenueID] = make(domain.WeekSchedule)
		}
		result[entry.VenueID][entry.DayOfWeek] = entry
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeeksByVenueIDs - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// ReplaceWeek атомарно заменяет расписание венью на все 7 дней
// Частичные недели отклоняются; вызывается внутри транзакции
func (r *Repository) ReplaceWeek(ctx context.Context, venueID int64, entries []domain.WorkingHoursEntry) error {
	if len(entries) != domain.DaysPerWeek {
		return fmt.Errorf("%w: got %d entries", ErrIncompleteWeek, len(entries))
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("venue_working_hours").
		Where(squirrel.Eq{"venue_id": venueID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeek - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWeek - execute delete: %v", ErrExecQuery, err)
	}

	insertBuilder := psqlbuilder.Insert("venue_working_hours").
		Columns("venue_id", "day_of_week", "is_closed", "is_open_24h", "open_time", "close_time")

	for _, e := range entries {
		insertBuilder = insertBuilder.Values(
			venueID,
			int(e.DayOfWeek),
			e.IsClosed,
			e.IsOpen24h,
			e.OpenTime,
			e.CloseTime,
		)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeek - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWeek - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) scanVenues(rows *sql.Rows) ([]*domain.Venue, error) {
	venues := make([]*domain.Venue, 0)

	for rows.Next() {
		var v domain.Venue
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&v.ID,
			&v.Username,
			&v.Name,
			&v.Province,
			&v.City,
			&v.Address,
			&v.Latitude,
			&v.Longitude,
			&v.IsActive,
			&v.DeletedAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanVenues - scan row: %v", ErrScanRow, err)
		}

		v.CreatedAt = createdAt.Time
		v.UpdatedAt = updatedAt.Time

		venues = append(venues, &v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanVenues - rows error: %v", ErrScanRow, err)
	}

	return venues, nil
}

func scanEntry(rows *sql.Rows) (*domain.WorkingHoursEntry, error) {
	var e domain.WorkingHoursEntry
	var day int
	var openTime, closeTime types.TimeString

	err := rows.Scan(
		&e.ID,
		&e.VenueID,
		&day,
		&e.IsClosed,
		&e.IsOpen24h,
		&openTime,
		&closeTime,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: scanEntry - scan row: %v", ErrScanRow, err)
	}

	e.DayOfWeek = domain.DayOfWeek(day)
	if !openTime.IsZero() {
		e.OpenTime = &openTime
	}
	if !closeTime.IsZero() {
		e.CloseTime = &closeTime
	}
	return &e, nil
}
