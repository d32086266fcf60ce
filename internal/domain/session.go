package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus статус сессии бронирования
type SessionStatus string

const (
	SessionPending    SessionStatus = "pending"     // создана, удерживает слот до expire_at
	SessionReserved   SessionStatus = "reserved"    // оплачена / подтверждена
	SessionInProgress SessionStatus = "inprogress"  // игра идёт
	SessionCompleted  SessionStatus = "completed"   // терминальный
	SessionRevoked    SessionStatus = "revoked"     // терминальный: отмена или истечение
)

// ActiveSessionStatuses статусы, при которых сессия занимает слот
var ActiveSessionStatuses = []SessionStatus{
	SessionPending,
	SessionReserved,
	SessionInProgress,
}

// Session временная бронь станции на интервал, выровненный по 30-минутной сетке
// Начало и конец хранятся в минутах от полуночи локального дня
type Session struct {
	ID           uuid.UUID
	UserID       int64
	StationID    int64
	Date         time.Time
	StartMinute  int
	EndMinute    int
	PlayersCount int
	Status       SessionStatus
	ExpireAt     time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal сессия в терминальном статусе и слот свободен
func (s *Session) IsTerminal() bool {
	return s.Status == SessionCompleted || s.Status == SessionRevoked
}

// HoldsSlot сессия удерживает слот
func (s *Session) HoldsSlot() bool {
	return !s.IsTerminal()
}

// CanBeCancelled сессию можно отменить клиентом
func (s *Session) CanBeCancelled() bool {
	return s.Status == SessionPending || s.Status == SessionReserved
}

// IsExpired срок удержания истёк (граница включительно)
func (s *Session) IsExpired(now time.Time) bool {
	return s.Status == SessionPending && !s.ExpireAt.After(now)
}

// InvoiceStatus статус счёта сессии
type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceExpired InvoiceStatus = "expired"
)

// Invoice счёт, создаваемый вместе с сессией с тем же сроком действия
// Reaper переводит его в expired при отзыве сессии; никто другой
// не имеет права откатить этот переход
type Invoice struct {
	ID             uuid.UUID
	SessionID      uuid.UUID
	PriceBeforeTax int64
	Tax            int64
	TotalPrice     int64
	Status         InvoiceStatus
	ExpireAt       time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
