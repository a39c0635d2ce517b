package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learning_pulse_backend/internal/model"
)

func day(d int, hour int) time.Time {
	return time.Date(2026, 4, d, hour, 30, 0, 0, time.UTC)
}

func TestStreakFirstActivity(t *testing.T) {
	p := &model.StudentProgress{}

	RecordStreakActivity(p, day(1, 9))

	assert.Equal(t, 1, p.CurrentStreak)
	assert.Equal(t, 1, p.LongestStreak)
	require.NotNil(t, p.LastActivityDate)
	assert.Equal(t, day(1, 9), *p.LastActivityDate)
}

func TestStreakConsecutiveDays(t *testing.T) {
	p := &model.StudentProgress{}

	RecordStreakActivity(p, day(1, 9))
	RecordStreakActivity(p, day(2, 20))
	RecordStreakActivity(p, day(3, 7))

	assert.Equal(t, 3, p.CurrentStreak)
	assert.GreaterOrEqual(t, p.LongestStreak, 3)
}

func TestStreakSameDayDoesNotDoubleCount(t *testing.T) {
	p := &model.StudentProgress{}

	RecordStreakActivity(p, day(1, 9))
	RecordStreakActivity(p, day(1, 18))

	assert.Equal(t, 1, p.CurrentStreak)
	assert.Equal(t, day(1, 18), *p.LastActivityDate)
}

func TestStreakGapResetsToOne(t *testing.T) {
	p := &model.StudentProgress{}

	RecordStreakActivity(p, day(1, 9))
	RecordStreakActivity(p, day(2, 9))
	RecordStreakActivity(p, day(5, 9)) // gap of two missed days

	assert.Equal(t, 1, p.CurrentStreak)
	assert.Equal(t, 2, p.LongestStreak, "high-water mark survives the reset")
}

func TestStreakCalendarDayNotInstant(t *testing.T) {
	p := &model.StudentProgress{}

	// 23:50 then 00:10 the next day is still consecutive.
	RecordStreakActivity(p, time.Date(2026, 4, 1, 23, 50, 0, 0, time.UTC))
	RecordStreakActivity(p, time.Date(2026, 4, 2, 0, 10, 0, 0, time.UTC))

	assert.Equal(t, 2, p.CurrentStreak)
}

func TestStreakLongestHighWater(t *testing.T) {
	p := &model.StudentProgress{}

	for d := 1; d <= 4; d++ {
		RecordStreakActivity(p, day(d, 10))
	}
	RecordStreakActivity(p, day(10, 10))
	RecordStreakActivity(p, day(11, 10))

	assert.Equal(t, 2, p.CurrentStreak)
	assert.Equal(t, 4, p.LongestStreak)
}
