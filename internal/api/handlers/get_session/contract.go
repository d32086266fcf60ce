package get_session

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/GSB-BookingService/internal/domain"
)

type SessionService interface {
	GetByID(ctx context.Context, id uuid.UUID, userID int64) (*domain.Session, *domain.Invoice, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
