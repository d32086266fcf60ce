package sessions

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/GSB-BookingService/internal/domain"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	GetInvoiceBySessionID(ctx context.Context, sessionID uuid.UUID) (*domain.Invoice, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SessionStatus) error
	UpdateInvoiceStatusBySessionID(ctx context.Context, sessionID uuid.UUID, status domain.InvoiceStatus) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
