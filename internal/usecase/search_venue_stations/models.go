package search_venue_stations

import (
	"time"

	"github.com/m04kA/GSB-BookingService/pkg/types"
)

// Request модель запроса поиска доступных станций одного венью
// Консоль обязательна, игра и количество игроков опциональны
type Request struct {
	Username     string
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	ConsoleID    int64
	GameID       *int64
	PlayersCount *int
}

// Response модель ответа поиска станций
type Response struct {
	Stations []StationResult
	Meta     Meta
}

// Meta метаданные выдачи
type Meta struct {
	Total int
}

// StationResult станция венью с признаком доступности на запрошенное окно
type StationResult struct {
	ID          int64
	Name        string
	ConsoleID   int64
	Capacity    int
	IsAvailable bool
	Pricings    []PricingInfo
	Games       []GameInfo
}

// PricingInfo тариф станции
type PricingInfo struct {
	PlayersCount int
	Price        int64
}

// GameInfo игра станции; Name пустой при недоступности каталога
type GameInfo struct {
	ID   int64
	Name string
}
