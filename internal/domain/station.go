package domain

import "time"

// Station одно бронируемое место внутри венью: консоль + вместимость + прайс
type Station struct {
	ID         int64
	VenueID    int64
	ConsoleID  int64
	Name       string
	Capacity   int
	IsActive   bool
	IsAccepted bool
	DeletedAt  *time.Time

	Pricings []PricingTier
	GameIDs  []int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBookable станция принимает бронирования
// Неактивные, непринятые и удалённые станции дают нулевую доступность
func (s *Station) IsBookable() bool {
	return s.IsActive && s.IsAccepted && s.DeletedAt == nil
}

// PriceFor возвращает цену для указанного количества игроков
// nil - тариф на такое количество не задан
func (s *Station) PriceFor(playersCount int) *PricingTier {
	for i := range s.Pricings {
		if s.Pricings[i].PlayersCount == playersCount {
			return &s.Pricings[i]
		}
	}
	return nil
}

// HasGame сообщает, доступна ли игра на станции
func (s *Station) HasGame(gameID int64) bool {
	for _, id := range s.GameIDs {
		if id == gameID {
			return true
		}
	}
	return false
}

// PricingTier тариф станции для конкретного количества игроков
// Инвариант: не более одного тарифа на playersCount, тарифов не больше Capacity
type PricingTier struct {
	ID           int64
	StationID    int64
	PlayersCount int
	Price        int64 // в минимальных единицах валюты, неотрицательная
}

// StationFilter фильтр выборки станций для поиска
// Применяется пакетно к набору венью, без фан-аута по одной станции
type StationFilter struct {
	VenueIDs     []int64
	ConsoleID    *int64
	GameID       *int64
	PlayersCount *int // станции с Capacity >= PlayersCount
}
