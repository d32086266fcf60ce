package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/GSB-BookingService/internal/domain"
	"github.com/m04kA/GSB-BookingService/pkg/dbmetrics"
	"github.com/m04kA/GSB-BookingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий сессий и их счетов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var sessionColumnList = []string{
	"id", "user_id", "station_id", "session_date", "start_minute", "end_minute",
	"players_count", "status", "expire_at", "created_at", "updated_at",
}

// Create создает сессию со статусом pending
// Вызывается внутри сериализуемой транзакции менеджера бронирования
func (r *Repository) Create(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("sessions").
		Columns(
			"id",
			"user_id",
			"station_id",
			"session_date",
			"start_minute",
			"end_minute",
			"players_count",
			"status",
			"expire_at",
		).
		Values(
			s.ID,
			s.UserID,
			s.StationID,
			dateOnly(s.Date),
			s.StartMinute,
			s.EndMinute,
			s.PlayersCount,
			s.Status,
			s.ExpireAt,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// CreateInvoice создает счёт сессии с тем же сроком действия
func (r *Repository) CreateInvoice(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("invoices").
		Columns(
			"id",
			"session_id",
			"price_before_tax",
			"tax",
			"total_price",
			"status",
			"expire_at",
		).
		Values(
			inv.ID,
			inv.SessionID,
			inv.PriceBeforeTax,
			inv.Tax,
			inv.TotalPrice,
			inv.Status,
			inv.ExpireAt,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateInvoice - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateInvoice - execute insert: %v", ErrExecQuery, err)
	}

	inv.CreatedAt = createdAt.Time
	inv.UpdatedAt = updatedAt.Time

	return inv, nil
}

// GetByID получает сессию по UUID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumnList...).
		From("sessions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Session
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.UserID,
		&s.StationID,
		&s.Date,
		&s.StartMinute,
		&s.EndMinute,
		&s.PlayersCount,
		&s.Status,
		&s.ExpireAt,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan session: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// GetInvoiceBySessionID получает счёт сессии
func (r *Repository) GetInvoiceBySessionID(ctx context.Context, sessionID uuid.UUID) (*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "session_id", "price_before_tax", "tax", "total_price", "status", "expire_at", "created_at", "updated_at",
	).
		From("invoices").
		Where(squirrel.Eq{"session_id": sessionID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetInvoiceBySessionID - build select query: %v", ErrBuildQuery, err)
	}

	var inv domain.Invoice
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&inv.ID,
		&inv.SessionID,
		&inv.PriceBeforeTax,
		&inv.Tax,
		&inv.TotalPrice,
		&inv.Status,
		&inv.ExpireAt,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetInvoiceBySessionID - scan invoice: %v", ErrScanRow, err)
	}

	inv.CreatedAt = createdAt.Time
	inv.UpdatedAt = updatedAt.Time

	return &inv, nil
}

// UpdateStatus обновляет статус сессии
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SessionStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// UpdateInvoiceStatusBySessionID обновляет статус счёта по ID сессии
func (r *Repository) UpdateInvoiceStatusBySessionID(ctx context.Context, sessionID uuid.UUID, status domain.InvoiceStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("invoices").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"session_id": sessionID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateInvoiceStatusBySessionID - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpdateInvoiceStatusBySessionID - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// RevokeExpired отзывает все pending-сессии с истёкшим сроком (граница
// включительно) и переводит их счета в expired
// Идемпотентна: повторный вызов без новых истечений затрагивает 0 строк
// Вызывается reaper-ом внутри одной транзакции
func (r *Repository) RevokeExpired(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	revokeQuery, revokeArgs, err := psqlbuilder.Update("sessions").
		Set("status", domain.SessionRevoked).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.SessionPending}).
		Where(squirrel.LtOrEq{"expire_at": now}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: RevokeExpired - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, revokeQuery, revokeArgs...)
	if err != nil {
		return 0, fmt.Errorf("%w: RevokeExpired - execute update: %v", ErrExecQuery, err)
	}

	revokedIDs := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, fmt.Errorf("%w: RevokeExpired - scan id: %v", ErrScanRow, err)
		}
		revokedIDs = append(revokedIDs, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("%w: RevokeExpired - rows error: %v", ErrScanRow, err)
	}
	rows.Close()

	if len(revokedIDs) == 0 {
		return 0, nil
	}

	ids := make([]string, len(revokedIDs))
	for i, id := range revokedIDs {
		ids[i] = id.String()
	}

	invoiceQuery, invoiceArgs, err := psqlbuilder.Update("invoices").
		Set("status", domain.InvoiceExpired).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"session_id": ids}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: RevokeExpired - build invoice update: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, invoiceQuery, invoiceArgs...); err != nil {
		return 0, fmt.Errorf("%w: RevokeExpired - execute invoice update: %v", ErrExecQuery, err)
	}

	return int64(len(revokedIDs)), nil
}

// dateOnly обнуляет время, чтобы сравнение шло только по дате
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
