package create_session

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/GSB-BookingService/pkg/types"
)

// Request модель запроса на создание сессии
type Request struct {
	UserID       int64            // ID пользователя из заголовка аутентификации
	StationID    int64            // ID станции
	Date         time.Time        // Дата сессии (без времени)
	StartTime    types.TimeString // Начало слота, "HH:MM"
	EndTime      types.TimeString // Конец слота, "HH:MM"
	PlayersCount int              // Количество игроков
}

// Response модель ответа с созданной сессией и счётом
type Response struct {
	SessionID      uuid.UUID
	InvoiceID      uuid.UUID
	PriceBeforeTax int64
	Tax            int64
	TotalPrice     int64
	ExpireAt       time.Time
	Session        SessionInfo
}

// SessionInfo данные созданной сессии для клиента
type SessionInfo struct {
	ID           uuid.UUID
	StationID    int64
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	PlayersCount int
	Status       string
	ExpireAt     time.Time
	CreatedAt    time.Time
}

// PreviewResponse модель ответа предпросмотра: расчёт цены без записи
type PreviewResponse struct {
	IsAvailable    bool
	PriceBeforeTax int64
	Tax            int64
	TotalPrice     int64
}
