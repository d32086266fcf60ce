package reaper

import (
	"context"
	"sync/atomic"
	"time"
)

// Reaper фоновый отзыв просроченных pending-сессий
// Работает по тикеру; если предыдущий прогон ещё идёт, тик пропускается
// целиком (single-flight, без очереди). Флаг - только защита от наложения
// прогонов внутри процесса: границей корректности остаётся транзакция,
// сам отзыв идемпотентен и безопасен при нескольких инстансах сервиса
type Reaper struct {
	sessionRepo  SessionRepository
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	interval     time.Duration
	running      atomic.Bool
	logger       Logger
}

// NewReaper создает новый экземпляр reaper-а
// metrics может быть nil, когда метрики выключены
func NewReaper(
	sessionRepo SessionRepository,
	txManager TransactionManager,
	metrics Metrics,
	interval time.Duration,
	logger Logger,
) *Reaper {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Reaper{
		sessionRepo:  sessionRepo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		interval:     interval,
		logger:       logger,
	}
}

// Run запускает цикл reaper-а до отмены контекста
// Все ошибки прогона логируются и глотаются: следующий тик повторит
// попытку естественным образом, состояние в БД не меняется при сбое
func (r *Reaper) Run(ctx context.Context) {
	r.logger.Info("Reaper: запущен с интервалом %s", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Reaper: остановлен")
			return
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

// tick один прогон отзыва
func (r *Reaper) tick(ctx context.Context) {
	if !r.running.CompareAndSwap(false, true) {
		r.logger.Warn("Reaper: предыдущий прогон ещё выполняется, тик пропущен")
		return
	}
	defer r.running.Store(false)

	now := r.timeProvider.Now()

	var revoked int64
	err := r.txManager.Do(ctx, func(txCtx context.Context) error {
		n, err := r.sessionRepo.RevokeExpired(txCtx, now)
		if err != nil {
			return err
		}
		revoked = n
		return nil
	})
	r.metrics.ObserveReaperRun(err)

	if err != nil {
		r.logger.Error("Reaper: прогон завершился ошибкой: %v", err)
		return
	}

	if revoked > 0 {
		r.metrics.AddReaperRevoked(int(revoked))
		r.logger.Info("Reaper: отозвано %d просроченных сессий", revoked)
	}
}
