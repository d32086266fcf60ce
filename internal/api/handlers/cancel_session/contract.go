package cancel_session

import (
	"context"

	"github.com/google/uuid"
)

type SessionService interface {
	Cancel(ctx context.Context, id uuid.UUID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
