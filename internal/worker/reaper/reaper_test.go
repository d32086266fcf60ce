package reaper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeSessionRepo struct {
	pending map[string]time.Time // id -> expire_at
	err     error
	calls   int
}

func (f *fakeSessionRepo) RevokeExpired(_ context.Context, now time.Time) (int64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}

	var revoked int64
	for id, expireAt := range f.pending {
		// Граница включительно: expire_at == now уже просрочено
		if !expireAt.After(now) {
			delete(f.pending, id)
			revoked++
		}
	}
	return revoked, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeMetrics struct {
	revoked int
	runs    int
	errs    int
}

func (m *fakeMetrics) AddReaperRevoked(n int) { m.revoked += n }

func (m *fakeMetrics) ObserveReaperRun(err error) {
	m.runs++
	if err != nil {
		m.errs++
	}
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestReaper(repo *fakeSessionRepo, metrics Metrics, now time.Time) *Reaper {
	r := NewReaper(repo, fakeTxManager{}, metrics, time.Minute, nopLogger{})
	r.timeProvider = fixedTime{now: now}
	return r
}

func TestReaper_Tick(t *testing.T) {
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

	t.Run("revokes expired sessions inclusively", func(t *testing.T) {
		repo := &fakeSessionRepo{pending: map[string]time.Time{
			"a": now.Add(-time.Minute), // просрочена
			"b": now,                   // граница - тоже просрочена
			"c": now.Add(time.Minute),  // ещё жива
		}}
		metrics := &fakeMetrics{}

		r := newTestReaper(repo, metrics, now)
		r.tick(context.Background())

		assert.Len(t, repo.pending, 1)
		assert.Contains(t, repo.pending, "c")
		assert.Equal(t, 2, metrics.revoked)
		assert.Equal(t, 1, metrics.runs)
		assert.Zero(t, metrics.errs)
	})

	t.Run("second run is a no-op", func(t *testing.T) {
		repo := &fakeSessionRepo{pending: map[string]time.Time{
			"a": now.Add(-time.Minute),
		}}
		metrics := &fakeMetrics{}

		r := newTestReaper(repo, metrics, now)
		r.tick(context.Background())
		r.tick(context.Background())

		assert.Equal(t, 2, repo.calls)
		assert.Equal(t, 1, metrics.revoked)
	})

	t.Run("skips tick while previous run is in flight", func(t *testing.T) {
		repo := &fakeSessionRepo{pending: map[string]time.Time{}}
		r := newTestReaper(repo, &fakeMetrics{}, now)

		r.running.Store(true)
		r.tick(context.Background())
		assert.Zero(t, repo.calls)

		r.running.Store(false)
		r.tick(context.Background())
		assert.Equal(t, 1, repo.calls)
	})

	t.Run("swallows repository errors and reports them to metrics", func(t *testing.T) {
		repo := &fakeSessionRepo{err: errors.New("db down")}
		metrics := &fakeMetrics{}

		r := newTestReaper(repo, metrics, now)
		r.tick(context.Background())

		assert.Equal(t, 1, metrics.errs)
		assert.Zero(t, metrics.revoked)

		// Следующий тик выполняется как обычно
		repo.err = nil
		r.tick(context.Background())
		assert.Equal(t, 2, repo.calls)
	})
}

func TestReaper_Run_StopsOnContextCancel(t *testing.T) {
	repo := &fakeSessionRepo{pending: map[string]time.Time{}}
	r := NewReaper(repo, fakeTxManager{}, nil, 5*time.Millisecond, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	time.Sleep(25 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reaper did not stop after context cancellation")
	}

	assert.Greater(t, repo.calls, 0)
}
