package domain

import (
	"time"

	"github.com/m04kA/GSB-BookingService/pkg/types"
)

// DaysPerWeek расписание венью задаётся ровно семью записями, по одной на день
const DaysPerWeek = 7

// Venue игровой клуб ("организация" в терминах продукта)
// Координаты опциональны: венью без координат не участвует в геопоиске
type Venue struct {
	ID        int64
	Username  string // уникальный публичный идентификатор (slug)
	Name      string
	Province  string
	City      string
	Address   string
	Latitude  *float64
	Longitude *float64
	IsActive  bool
	DeletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasCoordinates сообщает, задана ли у венью геопозиция
func (v *Venue) HasCoordinates() bool {
	return v.Latitude != nil && v.Longitude != nil
}

// IsBookable венью принимает бронирования
func (v *Venue) IsBookable() bool {
	return v.IsActive && v.DeletedAt == nil
}

// DayOfWeek день недели в локальной нумерации продукта: 0 - суббота (первый
// день местной недели), 6 - пятница
type DayOfWeek int

// DayOfWeekOf переводит time.Weekday в локальную нумерацию
func DayOfWeekOf(t time.Time) DayOfWeek {
	// time.Saturday = 6 -> 0, Sunday = 0 -> 1, ..., Friday = 5 -> 6
	return DayOfWeek((int(t.Weekday()) + 1) % DaysPerWeek)
}

// WorkingHoursEntry запись расписания венью на один день недели
// Ровно один из флагов IsClosed / IsOpen24h / диапазон OpenTime..CloseTime
type WorkingHoursEntry struct {
	ID        int64
	VenueID   int64
	DayOfWeek DayOfWeek
	IsClosed  bool
	IsOpen24h bool
	OpenTime  *types.TimeString
	CloseTime *types.TimeString
}

// HasRange запись задаёт диапазон открытия
func (e *WorkingHoursEntry) HasRange() bool {
	return !e.IsClosed && !e.IsOpen24h && e.OpenTime != nil && e.CloseTime != nil
}

// WeekSchedule расписание венью на неделю, индексированное днём недели
// Отсутствие записи на день трактуется как "открыто 24 часа" - это
// намеренная политика продукта (default-open), менять её нельзя
type WeekSchedule map[DayOfWeek]*WorkingHoursEntry

// Entry возвращает запись на день или nil, если день не сконфигурирован
func (s WeekSchedule) Entry(day DayOfWeek) *WorkingHoursEntry {
	return s[day]
}

// VenueSearchFilter фильтр кандидатов геопоиска
// Bounding box обязателен, остальные поля опциональны
type VenueSearchFilter struct {
	MinLat   float64
	MaxLat   float64
	MinLon   float64
	MaxLon   float64
	Province *string
	City     *string
}
