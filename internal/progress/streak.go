package progress

import (
	"time"

	"learning_pulse_backend/internal/model"
)

// RecordStreakActivity advances the aggregate's day-granularity streak for
// an activity at the given instant. Days are compared as UTC calendar
// dates, not instants:
//
//	same day            -> unchanged
//	exactly next day    -> streak+1 (longest is a high-water mark)
//	gap or first ever   -> reset to 1
//
// Callers must only invoke this for first-time completions; re-completions
// neither advance nor reset the streak.
func RecordStreakActivity(p *model.StudentProgress, at time.Time) {
	day := dateUTC(at)

	switch {
	case p.LastActivityDate == nil:
		p.CurrentStreak = 1
	case dateUTC(*p.LastActivityDate).Equal(day):
		// Same-day re-activity does not double-count.
	case dateUTC(*p.LastActivityDate).AddDate(0, 0, 1).Equal(day):
		p.CurrentStreak++
	default:
		p.CurrentStreak = 1
	}

	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}

	t := at
	p.LastActivityDate = &t
}

func dateUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
