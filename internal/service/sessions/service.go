package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/GSB-BookingService/internal/domain"
	storage "github.com/m04kA/GSB-BookingService/internal/infra/storage/session"
)

// Service операции над существующими сессиями: чтение и отмена
// Создание сессий живёт в usecase create_session вместе с расчётом цены
type Service struct {
	sessionRepo SessionRepository
	txManager   TransactionManager
	log         Logger
}

// NewService создает новый экземпляр сервиса сессий
func NewService(sessionRepo SessionRepository, txManager TransactionManager, log Logger) *Service {
	return &Service{
		sessionRepo: sessionRepo,
		txManager:   txManager,
		log:         log,
	}
}

// GetByID возвращает сессию со счётом, проверяя владельца
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID int64) (*domain.Session, *domain.Invoice, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, fmt.Errorf("%w: GetByID - fetch session %s: %v", ErrInternal, id, err)
	}

	if session.UserID != userID {
		return nil, nil, ErrAccessDenied
	}

	invoice, err := s.sessionRepo.GetInvoiceBySessionID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrInvoiceNotFound) {
			// Сессия без счёта - допустимое состояние для legacy-данных
			return session, nil, nil
		}
		return nil, nil, fmt.Errorf("%w: GetByID - fetch invoice for session %s: %v", ErrInternal, id, err)
	}

	return session, invoice, nil
}

// Cancel отменяет сессию клиента: переводит её в revoked, а счёт в expired
// Допустима только для pending и reserved; отмена терминальной сессии - ошибка
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, userID int64) error {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("%w: Cancel - fetch session %s: %v", ErrInternal, id, err)
	}

	if session.UserID != userID {
		return ErrAccessDenied
	}
	if !session.CanBeCancelled() {
		return fmt.Errorf("%w: status %s", ErrNotCancellable, session.Status)
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.sessionRepo.UpdateStatus(ctx, id, domain.SessionRevoked); err != nil {
			return err
		}
		return s.sessionRepo.UpdateInvoiceStatusBySessionID(ctx, id, domain.InvoiceExpired)
	})
	if err != nil {
		return fmt.Errorf("%w: Cancel - revoke session %s: %v", ErrInternal, id, err)
	}

	s.log.Info("Сессия %s отменена пользователем %d", id, userID)
	return nil
}
