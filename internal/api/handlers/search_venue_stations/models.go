package search_venue_stations

import (
	searchVenueStations "github.com/m04kA/GSB-BookingService/internal/usecase/search_venue_stations"
)

// StationsResponse HTTP response model
type StationsResponse struct {
	Stations []StationJSON `json:"stations"`
	Meta     MetaResponse  `json:"meta"`
}

// MetaResponse метаданные выдачи
type MetaResponse struct {
	Total int `json:"total"`
}

// StationJSON станция венью с признаком доступности
type StationJSON struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	ConsoleID   int64         `json:"consoleId"`
	Capacity    int           `json:"capacity"`
	IsAvailable bool          `json:"isAvailable"`
	Pricings    []PricingJSON `json:"pricings"`
	Games       []GameJSON    `json:"games"`
}

// PricingJSON тариф станции
type PricingJSON struct {
	PlayersCount int   `json:"playersCount"`
	Price        int64 `json:"price"`
}

// GameJSON игра станции
type GameJSON struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *searchVenueStations.Response) *StationsResponse {
	stations := make([]StationJSON, 0, len(resp.Stations))
	for _, st := range resp.Stations {
		pricings := make([]PricingJSON, 0, len(st.Pricings))
		for _, p := range st.Pricings {
			pricings = append(pricings, PricingJSON{PlayersCount: p.PlayersCount, Price: p.Price})
		}

		games := make([]GameJSON, 0, len(st.Games))
		for _, g := range st.Games {
			games = append(games, GameJSON{ID: g.ID, Name: g.Name})
		}

		stations = append(stations, StationJSON{
			ID:          st.ID,
			Name:        st.Name,
			ConsoleID:   st.ConsoleID,
			Capacity:    st.Capacity,
			IsAvailable: st.IsAvailable,
			Pricings:    pricings,
			Games:       games,
		})
	}

	return &StationsResponse{
		Stations: stations,
		Meta:     MetaResponse{Total: resp.Meta.Total},
	}
}
