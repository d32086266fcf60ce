package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GSB-BookingService/internal/domain"
	storage "github.com/m04kA/GSB-BookingService/internal/infra/storage/session"
)

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*domain.Session
	invoices map[uuid.UUID]*domain.Invoice // по session_id
}

func (f *fakeSessionRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, storage.ErrSessionNotFound
	}
	return s, nil
}

func (f *fakeSessionRepo) GetInvoiceBySessionID(_ context.Context, sessionID uuid.UUID) (*domain.Invoice, error) {
	inv, ok := f.invoices[sessionID]
	if !ok {
		return nil, storage.ErrInvoiceNotFound
	}
	return inv, nil
}

func (f *fakeSessionRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.SessionStatus) error {
	s, ok := f.sessions[id]
	if !ok {
		return storage.ErrSessionNotFound
	}
	s.Status = status
	return nil
}

func (f *fakeSessionRepo) UpdateInvoiceStatusBySessionID(_ context.Context, sessionID uuid.UUID, status domain.InvoiceStatus) error {
	if inv, ok := f.invoices[sessionID]; ok {
		inv.Status = status
	}
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRepoWithSession(status domain.SessionStatus) (*fakeSessionRepo, uuid.UUID) {
	id := uuid.New()
	repo := &fakeSessionRepo{
		sessions: map[uuid.UUID]*domain.Session{
			id: {
				ID:        id,
				UserID:    42,
				StationID: 1,
				Date:      time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
				Status:    status,
			},
		},
		invoices: map[uuid.UUID]*domain.Invoice{
			id: {ID: uuid.New(), SessionID: id, Status: domain.InvoicePending},
		},
	}
	return repo, id
}

func TestService_GetByID(t *testing.T) {
	t.Run("owner gets session with invoice", func(t *testing.T) {
		repo, id := newRepoWithSession(domain.SessionPending)
		svc := NewService(repo, fakeTxManager{}, nopLogger{})

		session, invoice, err := svc.GetByID(context.Background(), id, 42)
		require.NoError(t, err)
		assert.Equal(t, id, session.ID)
		require.NotNil(t, invoice)
		assert.Equal(t, id, invoice.SessionID)
	})

	t.Run("foreign session is denied", func(t *testing.T) {
		repo, id := newRepoWithSession(domain.SessionPending)
		svc := NewService(repo, fakeTxManager{}, nopLogger{})

		_, _, err := svc.GetByID(context.Background(), id, 99)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown session", func(t *testing.T) {
		repo, _ := newRepoWithSession(domain.SessionPending)
		svc := NewService(repo, fakeTxManager{}, nopLogger{})

		_, _, err := svc.GetByID(context.Background(), uuid.New(), 42)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("missing invoice is tolerated", func(t *testing.T) {
		repo, id := newRepoWithSession(domain.SessionPending)
		delete(repo.invoices, id)
		svc := NewService(repo, fakeTxManager{}, nopLogger{})

		session, invoice, err := svc.GetByID(context.Background(), id, 42)
		require.NoError(t, err)
		assert.NotNil(t, session)
		assert.Nil(t, invoice)
	})
}

func TestService_Cancel(t *testing.T) {
	t.Run("pending session is revoked with its invoice", func(t *testing.T) {
		repo, id := newRepoWithSession(domain.SessionPending)
		svc := NewService(repo, fakeTxManager{}, nopLogger{})

		require.NoError(t, svc.Cancel(context.Background(), id, 42))
		assert.Equal(t, domain.SessionRevoked, repo.sessions[id].Status)
		assert.Equal(t, domain.InvoiceExpired, repo.invoices[id].Status)
	})

	t.Run("reserved session can be cancelled", func(t *testing.T) {
		repo, id := newRepoWithSession(domain.SessionReserved)
		svc := NewService(repo, fakeTxManager{}, nopLogger{})

		require.NoError(t, svc.Cancel(context.Background(), id, 42))
		assert.Equal(t, domain.SessionRevoked, repo.sessions[id].Status)
	})

	t.Run("terminal statuses are not cancellable", func(t *testing.T) {
		for _, status := range []domain.SessionStatus{domain.SessionCompleted, domain.SessionRevoked, domain.SessionInProgress} {
			repo, id := newRepoWithSession(status)
			svc := NewService(repo, fakeTxManager{}, nopLogger{})

			err := svc.Cancel(context.Background(), id, 42)
			assert.ErrorIs(t, err, ErrNotCancellable, "status %s", status)
		}
	})

	t.Run("foreign session is denied", func(t *testing.T) {
		repo, id := newRepoWithSession(domain.SessionPending)
		svc := NewService(repo, fakeTxManager{}, nopLogger{})

		err := svc.Cancel(context.Background(), id, 99)
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Equal(t, domain.SessionPending, repo.sessions[id].Status)
	})
}
