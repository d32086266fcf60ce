package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/GSB-BookingService/internal/domain"
	"github.com/m04kA/GSB-BookingService/pkg/types"
)

func timePtr(s string) *types.TimeString {
	ts := types.TimeString(s)
	return &ts
}

func rangeEntry(day domain.DayOfWeek, open, close string) *domain.WorkingHoursEntry {
	return &domain.WorkingHoursEntry{
		DayOfWeek: day,
		OpenTime:  timePtr(open),
		CloseTime: timePtr(close),
	}
}

func TestOpenRange(t *testing.T) {
	t.Run("nil entry means open 24h", func(t *testing.T) {
		openMin, closeMin, ok := OpenRange(nil)
		assert.True(t, ok)
		assert.Equal(t, 0, openMin)
		assert.Equal(t, 1440, closeMin)
	})

	t.Run("open 24h flag", func(t *testing.T) {
		openMin, closeMin, ok := OpenRange(&domain.WorkingHoursEntry{IsOpen24h: true})
		assert.True(t, ok)
		assert.Equal(t, 0, openMin)
		assert.Equal(t, 1440, closeMin)
	})

	t.Run("closed day", func(t *testing.T) {
		_, _, ok := OpenRange(&domain.WorkingHoursEntry{IsClosed: true})
		assert.False(t, ok)
	})

	t.Run("range", func(t *testing.T) {
		openMin, closeMin, ok := OpenRange(rangeEntry(0, "09:00", "22:00"))
		assert.True(t, ok)
		assert.Equal(t, 540, openMin)
		assert.Equal(t, 1320, closeMin)
	})

	t.Run("malformed entry without flags and range is closed", func(t *testing.T) {
		_, _, ok := OpenRange(&domain.WorkingHoursEntry{})
		assert.False(t, ok)
	})
}

func TestIsOpenAt(t *testing.T) {
	// 2025-10-15 - среда, локальный день недели 4
	wednesday := domain.DayOfWeekOf(time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC))
	week := domain.WeekSchedule{
		wednesday: rangeEntry(wednesday, "09:00", "22:00"),
	}

	at := func(h, m int) time.Time {
		return time.Date(2025, 10, 15, h, m, 0, 0, time.UTC)
	}

	assert.False(t, IsOpenAt(week, at(8, 59)))
	assert.True(t, IsOpenAt(week, at(9, 0)))
	assert.True(t, IsOpenAt(week, at(21, 59)))
	// Граница закрытия не включается
	assert.False(t, IsOpenAt(week, at(22, 0)))

	// Несконфигурированный день (default-open): четверг открыт всегда
	assert.True(t, IsOpenAt(week, time.Date(2025, 10, 16, 3, 0, 0, 0, time.UTC)))

	closedWeek := domain.WeekSchedule{
		wednesday: {DayOfWeek: wednesday, IsClosed: true},
	}
	assert.False(t, IsOpenAt(closedWeek, at(12, 0)))
}

func TestRangeWithinDay(t *testing.T) {
	week := domain.WeekSchedule{
		2: rangeEntry(2, "09:00", "22:00"),
		3: {DayOfWeek: 3, IsClosed: true},
	}

	assert.True(t, RangeWithinDay(week, 2, 540, 1320))
	assert.True(t, RangeWithinDay(week, 2, 600, 660))
	assert.False(t, RangeWithinDay(week, 2, 510, 600))
	assert.False(t, RangeWithinDay(week, 2, 1290, 1350))
	assert.False(t, RangeWithinDay(week, 3, 600, 660))
	// Несконфигурированный день открыт весь день
	assert.True(t, RangeWithinDay(week, 5, 0, 1440))
}

func TestSummarizeDay(t *testing.T) {
	assert.Equal(t, "open 24h", SummarizeDay(nil))
	assert.Equal(t, "open 24h", SummarizeDay(&domain.WorkingHoursEntry{IsOpen24h: true}))
	assert.Equal(t, "closed", SummarizeDay(&domain.WorkingHoursEntry{IsClosed: true}))
	assert.Equal(t, "09:00 - 22:00", SummarizeDay(rangeEntry(0, "09:00", "22:00")))
}

func TestSummarizeWeek(t *testing.T) {
	week := domain.WeekSchedule{
		0: {DayOfWeek: 0, IsClosed: true},
		1: rangeEntry(1, "10:00", "20:00"),
	}

	summary := SummarizeWeek(week)
	assert.Len(t, summary, 7)
	assert.Equal(t, domain.DayOfWeek(0), summary[0].DayOfWeek)
	assert.Equal(t, "closed", summary[0].Text)
	assert.Equal(t, "10:00 - 20:00", summary[1].Text)
	// Все остальные дни не заданы - default-open
	for _, d := range summary[2:] {
		assert.Equal(t, "open 24h", d.Text)
	}
}

func TestDayOfWeekOf(t *testing.T) {
	// 2025-10-11 - суббота, первый день локальной недели
	assert.Equal(t, domain.DayOfWeek(0), domain.DayOfWeekOf(time.Date(2025, 10, 11, 0, 0, 0, 0, time.UTC)))
	// 2025-10-12 - воскресенье
	assert.Equal(t, domain.DayOfWeek(1), domain.DayOfWeekOf(time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC)))
	// 2025-10-17 - пятница, последний день
	assert.Equal(t, domain.DayOfWeek(6), domain.DayOfWeekOf(time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC)))
}
