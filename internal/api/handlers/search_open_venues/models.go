package search_open_venues

import (
	searchOpenVenues "github.com/m04kA/GSB-BookingService/internal/usecase/search_open_venues"
)

// SearchResponse HTTP response model
type SearchResponse struct {
	Organizations []OrganizationResponse `json:"organizations"`
	Meta          MetaResponse           `json:"meta"`
}

// MetaResponse метаданные выдачи
type MetaResponse struct {
	Total int `json:"total"`
}

// OrganizationResponse венью в поисковой выдаче
type OrganizationResponse struct {
	ID             int64             `json:"id"`
	Username       string            `json:"username"`
	Name           string            `json:"name"`
	Address        string            `json:"address"`
	DistanceMeters float64           `json:"distanceMeters"`
	IsOpen         bool              `json:"isOpen"`
	WorkingHours   []DayHoursJSON    `json:"workingHours"`
	Consoles       []ConsoleJSON     `json:"consoles"`
	Stations       []StationJSON     `json:"stations"`
}

// DayHoursJSON рабочие часы одного дня недели
type DayHoursJSON struct {
	DayOfWeek int    `json:"dayOfWeek"`
	Text      string `json:"text"`
}

// ConsoleJSON консоль венью
type ConsoleJSON struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// GameJSON игра станции
type GameJSON struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// StationJSON станция венью
type StationJSON struct {
	ID             int64         `json:"id"`
	Name           string        `json:"name"`
	ConsoleID      int64         `json:"consoleId"`
	Capacity       int           `json:"capacity"`
	Pricings       []PricingJSON `json:"pricings"`
	Games          []GameJSON    `json:"games"`
	AvailableSlots []SlotJSON    `json:"availableSlots"`
}

// PricingJSON тариф станции
type PricingJSON struct {
	PlayersCount int   `json:"playersCount"`
	Price        int64 `json:"price"`
}

// SlotJSON слот дня с признаком занятости
type SlotJSON struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Label     string `json:"label"`
	IsFree    bool   `json:"isFree"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *searchOpenVenues.Response) *SearchResponse {
	organizations := make([]OrganizationResponse, 0, len(resp.Organizations))
	for _, org := range resp.Organizations {
		organizations = append(organizations, fromOrganization(org))
	}

	return &SearchResponse{
		Organizations: organizations,
		Meta:          MetaResponse{Total: resp.Meta.Total},
	}
}

func fromOrganization(org searchOpenVenues.Organization) OrganizationResponse {
	hours := make([]DayHoursJSON, 0, len(org.WorkingHours))
	for _, d := range org.WorkingHours {
		hours = append(hours, DayHoursJSON{DayOfWeek: d.DayOfWeek, Text: d.Text})
	}

	consoles := make([]ConsoleJSON, 0, len(org.Consoles))
	for _, c := range org.Consoles {
		consoles = append(consoles, ConsoleJSON{ID: c.ID, Name: c.Name})
	}

	stations := make([]StationJSON, 0, len(org.Stations))
	for _, st := range org.Stations {
		stations = append(stations, fromStation(st))
	}

	return OrganizationResponse{
		ID:             org.ID,
		Username:       org.Username,
		Name:           org.Name,
		Address:        org.Address,
		DistanceMeters: org.DistanceMeters,
		IsOpen:         org.IsOpen,
		WorkingHours:   hours,
		Consoles:       consoles,
		Stations:       stations,
	}
}

func fromStation(st searchOpenVenues.StationResult) StationJSON {
	pricings := make([]PricingJSON, 0, len(st.Pricings))
	for _, p := range st.Pricings {
		pricings = append(pricings, PricingJSON{PlayersCount: p.PlayersCount, Price: p.Price})
	}

	games := make([]GameJSON, 0, len(st.Games))
	for _, g := range st.Games {
		games = append(games, GameJSON{ID: g.ID, Name: g.Name})
	}

	slots := make([]SlotJSON, 0, len(st.AvailableSlots))
	for _, s := range st.AvailableSlots {
		slots = append(slots, SlotJSON{
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
			Label:     s.Label,
			IsFree:    s.IsFree,
		})
	}

	return StationJSON{
		ID:             st.ID,
		Name:           st.Name,
		ConsoleID:      st.ConsoleID,
		Capacity:       st.Capacity,
		Pricings:       pricings,
		Games:          games,
		AvailableSlots: slots,
	}
}
