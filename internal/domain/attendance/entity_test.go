package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurationMinutes(t *testing.T) {
	in := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 510, DurationMinutes(in, in.Add(8*time.Hour+30*time.Minute)))
	assert.Equal(t, 1, DurationMinutes(in, in.Add(30*time.Second)))
	assert.Equal(t, 0, DurationMinutes(in, in.Add(29*time.Second)))
}

func TestDayOf(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	// 20:00 UTC is already the next day in UTC+7.
	got := DayOf(time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC), loc)

	assert.Equal(t, 11, got.Day())
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, loc, got.Location())
}

func TestStatsQuery_Validate(t *testing.T) {
	now := time.Date(2025, 7, 4, 12, 0, 0, 0, time.UTC)

	q := StatsQuery{}
	assert.NoError(t, q.Validate(now))
	assert.Equal(t, 7, q.Month)
	assert.Equal(t, 2025, q.Year)

	bad := StatsQuery{Month: 13}
	assert.Error(t, bad.Validate(now))
}
