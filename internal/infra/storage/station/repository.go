package station

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/GSB-BookingService/internal/domain"
	"github.com/m04kA/GSB-BookingService/pkg/dbmetrics"
	"github.com/m04kA/GSB-BookingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий станций с тарифами и играми
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория станций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var stationColumnList = []string{
	"id", "venue_id", "console_id", "name", "capacity",
	"is_active", "is_accepted", "deleted_at", "created_at", "updated_at",
}

// GetByID получает станцию по ID вместе с тарифами и играми
// Удалённые станции не возвращаются
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Station, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(stationColumnList...).
		From("stations").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"deleted_at": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	stations, err := r.scanStations(rows)
	if err != nil {
		return nil, err
	}
	if len(stations) == 0 {
		return nil, ErrStationNotFound
	}

	if err := r.attachPricings(ctx, stations); err != nil {
		return nil, err
	}
	if err := r.attachGames(ctx, stations); err != nil {
		return nil, err
	}

	return stations[0], nil
}

// ListByFilter получает станции набора венью одним батчем
// Фильтры по консоли и вместимости применяются в SQL, тарифы и игры
// дочитываются двумя батч-запросами по полученным ID станций
func (r *Repository) ListByFilter(ctx context.Context, filter domain.StationFilter) ([]*domain.Station, error) {
	if len(filter.VenueIDs) == 0 {
		return []*domain.Station{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(stationColumnList...).
		From("stations").
		Where("venue_id = ANY(?)", pq.Array(filter.VenueIDs)).
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.Eq{"is_accepted": true}).
		Where(squirrel.Eq{"deleted_at": nil}).
		OrderBy("venue_id ASC, id ASC")

	if filter.ConsoleID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"console_id": *filter.ConsoleID})
	}
	if filter.PlayersCount != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"capacity": *filter.PlayersCount})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	stations, err := r.scanStations(rows)
	if err != nil {
		return nil, err
	}
	if len(stations) == 0 {
		return stations, nil
	}

	if err := r.attachPricings(ctx, stations); err != nil {
		return nil, err
	}
	if err := r.attachGames(ctx, stations); err != nil {
		return nil, err
	}

	// Фильтр по игре применяется в памяти к уже загруженным связям
	if filter.GameID != nil {
		filtered := stations[:0]
		for _, s := range stations {
			if s.HasGame(*filter.GameID) {
				filtered = append(filtered, s)
			}
		}
		stations = filtered
	}

	return stations, nil
}

// attachPricings дочитывает тарифы для набора станций одним запросом
func (r *Repository) attachPricings(ctx context.Context, stations []*domain.Station) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	ids := stationIDs(stations)
	query, args, err := psqlbuilder.Select("id", "station_id", "players_count", "price").
		From("station_pricing").
		Where("station_id = ANY(?)", pq.Array(ids)).
		OrderBy("station_id ASC, players_count ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachPricings - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachPricings - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	byStation := indexStations(stations)
	for rows.Next() {
		var tier domain.PricingTier
		if err := rows.Scan(&tier.ID, &tier.StationID, &tier.PlayersCount, &tier.Price); err != nil {
			return fmt.Errorf("%w: attachPricings - scan row: %v", ErrScanRow, err)
		}
		if s, ok := byStation[tier.StationID]; ok {
			s.Pricings = append(s.Pricings, tier)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachPricings - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// attachGames дочитывает связи станция-игра для набора станций одним запросом
func (r *Repository) attachGames(ctx context.Context, stations []*domain.Station) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	ids := stationIDs(stations)
	query, args, err := psqlbuilder.Select("station_id", "game_id").
		From("station_games").
		Where("station_id = ANY(?)", pq.Array(ids)).
		OrderBy("station_id ASC, game_id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachGames - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachGames - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	byStation := indexStations(stations)
	for rows.Next() {
		var stationID, gameID int64
		if err := rows.Scan(&stationID, &gameID); err != nil {
			return fmt.Errorf("%w: attachGames - scan row: %v", ErrScanRow, err)
		}
		if s, ok := byStation[stationID]; ok {
			s.GameIDs = append(s.GameIDs, gameID)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachGames - rows error: %v", ErrScanRow, err)
	}

	return nil
}

func (r *Repository) scanStations(rows *sql.Rows) ([]*domain.Station, error) {
	stations := make([]*domain.Station, 0)

	for rows.Next() {
		var s domain.Station
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.VenueID,
			&s.ConsoleID,
			&s.Name,
			&s.Capacity,
			&s.IsActive,
			&s.IsAccepted,
			&s.DeletedAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanStations - scan row: %v", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time

		stations = append(stations, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanStations - rows error: %v", ErrScanRow, err)
	}

	return stations, nil
}

func stationIDs(stations []*domain.Station) []int64 {
	ids := make([]int64, len(stations))
	for i, s := range stations {
		ids[i] = s.ID
	}
	return ids
}

func indexStations(stations []*domain.Station) map[int64]*domain.Station {
	m := make(map[int64]*domain.Station, len(stations))
	for _, s := range stations {
		m[s.ID] = s
	}
	return m
}
