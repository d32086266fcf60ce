package create_session

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/GSB-BookingService/internal/domain"
	storage "github.com/m04kA/GSB-BookingService/internal/infra/storage/station"
	"github.com/m04kA/GSB-BookingService/internal/service/availability"
)

// sqlStateSerializationFailure проигрыш сериализуемой транзакции (SQLSTATE 40001)
// Для клиента это тот же конфликт слота, что и проигрыш post-lock проверки
const sqlStateSerializationFailure = "40001"

// UseCase use case для создания сессии бронирования
type UseCase struct {
	stationRepo  StationRepository
	bookingRepo  BookingRepository
	sessionRepo  SessionRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	taxRate      float64
	holdDuration time.Duration
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	stationRepo StationRepository,
	bookingRepo BookingRepository,
	sessionRepo SessionRepository,
	txManager TransactionManager,
	taxRate float64,
	holdDuration time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		stationRepo:  stationRepo,
		bookingRepo:  bookingRepo,
		sessionRepo:  sessionRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		taxRate:      taxRate,
		holdDuration: holdDuration,
		logger:       logger,
	}
}

// Execute выполняет use case создания сессии
// Запись идёт в сериализуемой транзакции: после взятия блокировки занятость
// перепроверяется, и проигравший конкурентный запрос получает конфликт
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateSession: user=%d, station=%d, date=%s, time=%s-%s, players=%d",
		req.UserID, req.StationID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.PlayersCount)

	price, err := uc.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()
	tax := computeTax(price, uc.taxRate)
	expireAt := now.Add(uc.holdDuration)

	session := &domain.Session{
		UserID:       req.UserID,
		StationID:    req.StationID,
		Date:         req.Date,
		StartMinute:  req.StartTime.MustMinutes(),
		EndMinute:    req.EndTime.MustMinutes(),
		PlayersCount: req.PlayersCount,
		Status:       domain.SessionPending,
		ExpireAt:     expireAt,
	}

	var invoice *domain.Invoice

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Перечитываем занятость под блокировкой (FOR UPDATE) и перепроверяем
		// пересечение: это и есть механизм, не дающий двум конкурентным
		// запросам забрать один слот
		occupied, err := uc.bookingRepo.GetOccupiedRanges(txCtx, req.StationID, req.Date)
		if err != nil {
			uc.logger.Error("CreateSession: failed to get occupied ranges: %v", err)
			return fmt.Errorf("%w: failed to get occupied ranges: %v", ErrInternal, err)
		}

		if !availability.RangeIsFree(occupied, req.StartTime, req.EndTime) {
			uc.logger.Warn("CreateSession: slot %s-%s already taken on station=%d", req.StartTime, req.EndTime, req.StationID)
			return ErrSlotConflict
		}

		created, err := uc.sessionRepo.Create(txCtx, session)
		if err != nil {
			uc.logger.Error("CreateSession: failed to create session: %v", err)
			return fmt.Errorf("%w: failed to create session: %v", ErrInternal, err)
		}
		session = created

		inv := &domain.Invoice{
			SessionID:      session.ID,
			PriceBeforeTax: price,
			Tax:            tax,
			TotalPrice:     price + tax,
			Status:         domain.InvoicePending,
			ExpireAt:       expireAt,
		}

		createdInvoice, err := uc.sessionRepo.CreateInvoice(txCtx, inv)
		if err != nil {
			uc.logger.Error("CreateSession: failed to create invoice: %v", err)
			return fmt.Errorf("%w: failed to create invoice: %v", ErrInternal, err)
		}
		invoice = createdInvoice

		return nil
	})
	if err != nil {
		if isSerializationFailure(err) {
			uc.logger.Warn("CreateSession: serialization failure, treating as slot conflict")
			return nil, ErrSlotConflict
		}
		return nil, err
	}

	uc.logger.Info("CreateSession: created session=%s invoice=%s total=%d expire=%s",
		session.ID, invoice.ID, invoice.TotalPrice, expireAt.Format(time.RFC3339))

	return &Response{
		SessionID:      session.ID,
		InvoiceID:      invoice.ID,
		PriceBeforeTax: invoice.PriceBeforeTax,
		Tax:            invoice.Tax,
		TotalPrice:     invoice.TotalPrice,
		ExpireAt:       expireAt,
		Session: SessionInfo{
			ID:           session.ID,
			StationID:    session.StationID,
			Date:         session.Date,
			StartTime:    req.StartTime,
			EndTime:      req.EndTime,
			PlayersCount: session.PlayersCount,
			Status:       string(session.Status),
			ExpireAt:     session.ExpireAt,
			CreatedAt:    session.CreatedAt,
		},
	}, nil
}

// Preview выполняет валидацию и расчёт цены без записи
func (uc *UseCase) Preview(ctx context.Context, req *Request) (*PreviewResponse, error) {
	price, err := uc.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	occupied, err := uc.bookingRepo.GetOccupiedRanges(ctx, req.StationID, req.Date)
	if err != nil {
		uc.logger.Error("PreviewSession: failed to get occupied ranges: %v", err)
		return nil, fmt.Errorf("%w: failed to get occupied ranges: %v", ErrInternal, err)
	}

	tax := computeTax(price, uc.taxRate)

	return &PreviewResponse{
		IsAvailable:    availability.RangeIsFree(occupied, req.StartTime, req.EndTime),
		PriceBeforeTax: price,
		Tax:            tax,
		TotalPrice:     price + tax,
	}, nil
}

// validate прогоняет все проверки в порядке fail-fast и возвращает цену тарифа
func (uc *UseCase) validate(ctx context.Context, req *Request) (int64, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateSession: validation failed: %v", err)
		return 0, err
	}

	if err := validateSlotAlignment(req); err != nil {
		uc.logger.Warn("CreateSession: slot alignment failed: %v", err)
		return 0, err
	}

	if err := validateNotInPast(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateSession: start in past: station=%d date=%s time=%s",
			req.StationID, req.Date.Format(domain.DateFormat), req.StartTime)
		return 0, err
	}

	station, err := uc.stationRepo.GetByID(ctx, req.StationID)
	if err != nil {
		if errors.Is(err, storage.ErrStationNotFound) {
			uc.logger.Warn("CreateSession: station id=%d not found", req.StationID)
			return 0, ErrStationNotFound
		}
		uc.logger.Error("CreateSession: failed to get station id=%d: %v", req.StationID, err)
		return 0, fmt.Errorf("%w: failed to get station: %v", ErrInternal, err)
	}

	price, err := validateStation(station, req.PlayersCount)
	if err != nil {
		uc.logger.Warn("CreateSession: station validation failed: %v", err)
		return 0, err
	}

	return price, nil
}

// computeTax считает налог от цены тарифа с округлением до целого
func computeTax(priceBeforeTax int64, rate float64) int64 {
	return int64(math.Round(float64(priceBeforeTax) * rate))
}

// isSerializationFailure проверяет проигрыш сериализуемой транзакции
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == sqlStateSerializationFailure
	}
	return false
}
