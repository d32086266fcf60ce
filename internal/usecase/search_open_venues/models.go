package search_open_venues

import (
	"time"

	"github.com/m04kA/GSB-BookingService/pkg/types"
)

// Request модель запроса поиска открытых венью поблизости
// Date по умолчанию - сегодняшний день; окно StartTime/EndTime опционально,
// но задаётся только целиком
type Request struct {
	Latitude  float64
	Longitude float64
	RadiusKm  int

	Date      *time.Time
	StartTime *types.TimeString
	EndTime   *types.TimeString

	Province     *string
	City         *string
	ConsoleID    *int64
	GameID       *int64
	PlayersCount *int
	Limit        *int
}

// Response модель ответа поиска
type Response struct {
	Organizations []Organization
	Meta          Meta
}

// Meta метаданные выдачи
type Meta struct {
	Total int
}

// Organization венью в поисковой выдаче
type Organization struct {
	ID             int64
	Username       string
	Name           string
	Address        string
	DistanceMeters float64
	IsOpen         bool
	WorkingHours   []DayHours
	Consoles       []ConsoleInfo
	Stations       []StationResult
}

// DayHours описание рабочих часов одного дня недели
type DayHours struct {
	DayOfWeek int
	Text      string
}

// ConsoleInfo консоль, представленная на венью
// Name пустой при недоступности каталога (graceful degradation)
type ConsoleInfo struct {
	ID   int64
	Name string
}

// GameInfo игра станции; Name пустой при недоступности каталога
type GameInfo struct {
	ID   int64
	Name string
}

// StationResult станция венью в поисковой выдаче
type StationResult struct {
	ID             int64
	Name           string
	ConsoleID      int64
	Capacity       int
	Pricings       []PricingInfo
	Games          []GameInfo
	AvailableSlots []SlotInfo
}

// PricingInfo тариф станции
type PricingInfo struct {
	PlayersCount int
	Price        int64
}

// SlotInfo слот дня с признаком занятости
type SlotInfo struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Label     string
	IsFree    bool
}
