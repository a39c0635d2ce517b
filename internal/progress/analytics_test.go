package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learning_pulse_backend/internal/model"
)

func boolp(v bool) *bool { return &v }

func TestAggregateByDay(t *testing.T) {
	events := []model.InteractionEvent{
		{StudentID: 1, TimeSpentSeconds: 60, OccurredAt: time.Date(2026, 4, 1, 23, 59, 0, 0, time.UTC)},
		{StudentID: 1, TimeSpentSeconds: 30, OccurredAt: time.Date(2026, 4, 2, 0, 1, 0, 0, time.UTC)},
		{StudentID: 2, TimeSpentSeconds: 10, OccurredAt: time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)},
	}

	buckets := Aggregate(events, ByDay)

	require.Len(t, buckets, 2)
	assert.Equal(t, "2026-04-01", buckets[0].Key)
	assert.Equal(t, 2, buckets[0].Count)
	assert.Equal(t, 70, buckets[0].TotalTimeSeconds)
	assert.Equal(t, "2026-04-02", buckets[1].Key)
	assert.Equal(t, 1, buckets[1].Count)
}

func TestAggregateByTopicFirstSeenMetadata(t *testing.T) {
	events := []model.InteractionEvent{
		{TopicID: "loops", ResourceType: "activity", Succeeded: boolp(false), OccurredAt: time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)},
		// Earlier timestamp, later arrival: metadata must come from the
		// first event by arrival order, not by timestamp.
		{TopicID: "loops", ResourceType: "assessment", Succeeded: boolp(true), OccurredAt: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)},
	}

	buckets := Aggregate(events, ByTopic)

	require.Len(t, buckets, 1)
	assert.Equal(t, "loops", buckets[0].Key)
	assert.Equal(t, "activity", buckets[0].ResourceType)
	assert.InDelta(t, 0.5, buckets[0].SuccessRate, 1e-9)
}

func TestAggregateByResource(t *testing.T) {
	events := []model.InteractionEvent{
		{ResourceType: "lesson", ResourceID: 12, TimeSpentSeconds: 90, OccurredAt: time.Now()},
		{ResourceType: "lesson", ResourceID: 12, TimeSpentSeconds: 40, OccurredAt: time.Now()},
		{ResourceType: "lesson", ResourceID: 13, TimeSpentSeconds: 5, OccurredAt: time.Now()},
	}

	buckets := Aggregate(events, ByResource)

	require.Len(t, buckets, 2)
	assert.Equal(t, "lesson:12", buckets[0].Key)
	assert.Equal(t, 130, buckets[0].TotalTimeSeconds)
}

func TestAggregateDoesNotMutateInput(t *testing.T) {
	events := []model.InteractionEvent{
		{TopicID: "loops", TimeSpentSeconds: 60, OccurredAt: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)},
	}
	orig := events[0]

	Aggregate(events, ByDay)
	Aggregate(events, ByTopic)
	Sessions(events)

	assert.Equal(t, orig, events[0])
}

func TestSessionsDurationAndBounce(t *testing.T) {
	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	events := []model.InteractionEvent{
		{SessionID: "S1", OccurredAt: base},
		{SessionID: "S1", OccurredAt: base.Add(5 * time.Second)},
		{SessionID: "S1", OccurredAt: base.Add(12 * time.Second)},
		{SessionID: "S2", OccurredAt: base.Add(time.Hour)},
	}

	summary := Sessions(events)

	require.Equal(t, 2, summary.SessionCount)

	s1 := summary.Sessions[0]
	assert.Equal(t, "S1", s1.SessionID)
	assert.Equal(t, 3, s1.Events)
	assert.InDelta(t, 12, s1.DurationSeconds, 1e-9)
	assert.False(t, s1.Bounce, "multi-event session is not a bounce")

	s2 := summary.Sessions[1]
	assert.True(t, s2.Bounce)
	assert.Zero(t, s2.DurationSeconds)

	assert.Equal(t, 1, summary.BounceCount)
	assert.InDelta(t, 0.5, summary.BounceRate, 1e-9)
}

func TestTopicScores(t *testing.T) {
	events := []model.InteractionEvent{
		{TopicID: "loops", Succeeded: boolp(true)},
		{TopicID: "loops", Succeeded: boolp(false)},
		{TopicID: "variables", Succeeded: boolp(true)},
		{TopicID: "ignored"}, // no outcome
		{Succeeded: boolp(true)}, // no topic
	}

	scores := TopicScores(events)

	require.Len(t, scores, 2)
	assert.Equal(t, 2, scores["loops"].Attempts)
	assert.InDelta(t, 50, scores["loops"].SuccessPct, 1e-9)
	assert.InDelta(t, 100, scores["variables"].SuccessPct, 1e-9)
}
