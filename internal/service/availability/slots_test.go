package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GSB-BookingService/internal/domain"
	"github.com/m04kA/GSB-BookingService/pkg/types"
)

func occupied(start, end string) domain.OccupiedRange {
	return domain.OccupiedRange{
		StationID: 1,
		Start:     types.TimeString(start),
		End:       types.TimeString(end),
	}
}

func TestGenerateSlots(t *testing.T) {
	t.Run("full day yields 48 slots", func(t *testing.T) {
		slots := GenerateSlots(0, 1440)
		require.Len(t, slots, domain.SlotsPerDay)
		assert.Equal(t, types.TimeString("00:00"), slots[0].StartTime)
		assert.Equal(t, types.TimeString("00:30"), slots[0].EndTime)
		assert.Equal(t, types.TimeString("23:30"), slots[47].StartTime)
		assert.Equal(t, types.TimeString("24:00"), slots[47].EndTime)
	})

	t.Run("working range 09:00-22:00", func(t *testing.T) {
		slots := GenerateSlots(540, 1320)
		require.Len(t, slots, 26)
		assert.Equal(t, types.TimeString("09:00"), slots[0].StartTime)
		assert.Equal(t, types.TimeString("21:30"), slots[25].StartTime)
		assert.Equal(t, types.TimeString("22:00"), slots[25].EndTime)
	})

	t.Run("unaligned opening is rounded up to grid", func(t *testing.T) {
		// Открытие в 09:15: частичный слот отбрасывается, первый слот в 09:30
		slots := GenerateSlots(555, 720)
		require.NotEmpty(t, slots)
		assert.Equal(t, types.TimeString("09:30"), slots[0].StartTime)
	})

	t.Run("unaligned closing drops partial slot", func(t *testing.T) {
		// Закрытие в 11:45: последний полный слот кончается в 11:30
		slots := GenerateSlots(540, 705)
		require.NotEmpty(t, slots)
		assert.Equal(t, types.TimeString("11:30"), slots[len(slots)-1].EndTime)
	})

	t.Run("too narrow range yields nothing", func(t *testing.T) {
		assert.Empty(t, GenerateSlots(555, 570))
	})

	t.Run("slot labels", func(t *testing.T) {
		slots := GenerateSlots(540, 600)
		require.Len(t, slots, 2)
		assert.Equal(t, "09:00 - 09:30", slots[0].Label)
	})
}

func TestRangeIsFree(t *testing.T) {
	ranges := []domain.OccupiedRange{occupied("10:00", "11:00")}

	assert.False(t, RangeIsFree(ranges, "10:00", "10:30"))
	assert.False(t, RangeIsFree(ranges, "10:30", "11:00"))
	assert.False(t, RangeIsFree(ranges, "09:30", "10:30"))
	assert.False(t, RangeIsFree(ranges, "09:00", "12:00"))

	// Граничащие интервалы не конфликтуют
	assert.True(t, RangeIsFree(ranges, "09:30", "10:00"))
	assert.True(t, RangeIsFree(ranges, "11:00", "11:30"))

	assert.True(t, RangeIsFree(nil, "10:00", "10:30"))
}

func TestAnnotateSlots(t *testing.T) {
	slots := GenerateSlots(540, 660) // 09:00 - 11:00, четыре слота
	ranges := []domain.OccupiedRange{occupied("09:30", "10:30")}

	annotated := AnnotateSlots(slots, ranges)
	require.Len(t, annotated, 4)

	assert.True(t, annotated[0].IsFree)  // 09:00 - 09:30
	assert.False(t, annotated[1].IsFree) // 09:30 - 10:00
	assert.False(t, annotated[2].IsFree) // 10:00 - 10:30
	assert.True(t, annotated[3].IsFree)  // 10:30 - 11:00

	assert.True(t, HasFreeSlot(annotated))

	fullyBooked := AnnotateSlots(slots, []domain.OccupiedRange{occupied("09:00", "11:00")})
	assert.False(t, HasFreeSlot(fullyBooked))
}
