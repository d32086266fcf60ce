package domain

// Атомарная единица бронирования - слот фиксированной длины
const (
	SlotDurationMinutes = 30
	SlotsPerDay         = 24 * 60 / SlotDurationMinutes
)

// Business validation constants
const (
	MinPlayersCount = 1
	MaxPlayersCount = 20

	MinRadiusKm     = 5
	MaxRadiusKm     = 30
	RadiusKmStep    = 5
	MaxSearchLimit  = 100

	MaxStationCapacity = 50
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
