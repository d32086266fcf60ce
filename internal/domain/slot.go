package domain

import (
	"fmt"

	"github.com/m04kA/GSB-BookingService/pkg/types"
)

// Slot фиксированный 30-минутный интервал дня с человекочитаемой меткой
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Label     string
}

// NewSlot создает слот с меткой "HH:MM - HH:MM"
func NewSlot(start, end types.TimeString) Slot {
	return Slot{
		StartTime: start,
		EndTime:   end,
		Label:     fmt.Sprintf("%s - %s", start, end),
	}
}

// SlotAvailability слот с признаком занятости
type SlotAvailability struct {
	Slot
	IsFree bool
}
