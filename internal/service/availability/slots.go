package availability

import (
	"github.com/m04kA/GSB-BookingService/internal/domain"
	"github.com/m04kA/GSB-BookingService/pkg/types"
)

// GenerateSlots нарезает интервал открытия [openMin, closeMin) на 30-минутные
// слоты, выровненные по сетке :00/:30
// Частичные слоты на краях интервала отбрасываются: венью, открытое с 9:15,
// первый слот получает в 09:30
func GenerateSlots(openMin, closeMin int) []domain.Slot {
	step := domain.SlotDurationMinutes

	start := openMin
	if rem := start % step; rem != 0 {
		start += step - rem
	}

	slots := make([]domain.Slot, 0, (closeMin-start)/step)
	for ; start+step <= closeMin; start += step {
		from, err := types.FromMinutes(start)
		if err != nil {
			continue
		}
		to, err := types.FromMinutes(start + step)
		if err != nil {
			continue
		}
		slots = append(slots, domain.NewSlot(from, to))
	}

	return slots
}

// AnnotateSlots размечает слоты признаком занятости по списку занятых интервалов
// Слот занят, если реально пересекается хотя бы с одним интервалом:
// граничащие интервалы не конфликтуют
func AnnotateSlots(slots []domain.Slot, occupied []domain.OccupiedRange) []domain.SlotAvailability {
	result := make([]domain.SlotAvailability, 0, len(slots))
	for _, slot := range slots {
		result = append(result, domain.SlotAvailability{
			Slot:   slot,
			IsFree: RangeIsFree(occupied, slot.StartTime, slot.EndTime),
		})
	}
	return result
}

// RangeIsFree проверяет, свободен ли интервал [start, end) от занятых интервалов
func RangeIsFree(occupied []domain.OccupiedRange, start, end types.TimeString) bool {
	for _, rg := range occupied {
		if rg.Overlaps(start, end) {
			return false
		}
	}
	return true
}

// HasFreeSlot сообщает, остался ли среди размеченных слотов хоть один свободный
func HasFreeSlot(slots []domain.SlotAvailability) bool {
	for _, s := range slots {
		if s.IsFree {
			return true
		}
	}
	return false
}
