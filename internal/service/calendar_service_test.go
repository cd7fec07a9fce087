package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, date string) time.Time {
	t.Helper()
	day, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	return day
}

func TestIsBusinessDay(t *testing.T) {
	svc := NewCalendarService(time.UTC)

	assert.True(t, svc.IsBusinessDay(mustParse(t, "2025-12-29")))  // Monday
	assert.True(t, svc.IsBusinessDay(mustParse(t, "2025-12-30")))  // Tuesday
	assert.False(t, svc.IsBusinessDay(mustParse(t, "2025-12-27"))) // Saturday
	assert.False(t, svc.IsBusinessDay(mustParse(t, "2025-12-28"))) // Sunday
}

func TestBaseSlots(t *testing.T) {
	svc := NewCalendarService(time.UTC)

	slots := svc.BaseSlots(mustParse(t, "2025-12-30"))

	// 09:00-18:00 in 30-minute steps minus the lunch hour.
	require.Len(t, slots, 16)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "17:30", slots[len(slots)-1])
	assert.NotContains(t, slots, "12:00")
	assert.NotContains(t, slots, "12:30")
	assert.NotContains(t, slots, "18:00")

	// Chronological ordering.
	for i := 1; i < len(slots); i++ {
		assert.Less(t, slots[i-1], slots[i])
	}
}

func TestBaseSlotsWeekendEmpty(t *testing.T) {
	svc := NewCalendarService(time.UTC)

	assert.Empty(t, svc.BaseSlots(mustParse(t, "2025-12-28")))
}

func TestBaseSlotsDeterministic(t *testing.T) {
	svc := NewCalendarService(time.UTC)
	day := mustParse(t, "2025-12-30")

	assert.Equal(t, svc.BaseSlots(day), svc.BaseSlots(day))
}

func TestParseDate(t *testing.T) {
	svc := NewCalendarService(time.UTC)

	day, err := svc.ParseDate("2025-12-30")
	require.NoError(t, err)
	assert.Equal(t, time.Tuesday, day.Weekday())

	_, err = svc.ParseDate("2025-13-45")
	assert.Error(t, err)

	_, err = svc.ParseDate("30/12/2025")
	assert.Error(t, err)
}
