package reaper

import (
	"context"
	"time"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	RevokeExpired(ctx context.Context, now time.Time) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс метрик reaper-а
type Metrics interface {
	AddReaperRevoked(n int)
	ObserveReaperRun(err error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// noopMetrics заглушка метрик, когда метрики выключены конфигом
type noopMetrics struct{}

func (noopMetrics) AddReaperRevoked(int)   {}
func (noopMetrics) ObserveReaperRun(error) {}
