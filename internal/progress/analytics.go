package progress

import (
	"strconv"
	"time"

	"learning_pulse_backend/internal/model"
)

type Granularity string

const (
	ByDay      Granularity = "day"
	ByTopic    Granularity = "topic"
	ByResource Granularity = "resource"
)

// Bucket is one row of an aggregated summary. For day granularity the key
// is the UTC calendar date (YYYY-MM-DD); for topic/resource it is the
// topic/resource identity, with metadata taken from the first event seen
// in arrival order.
type Bucket struct {
	Key              string  `json:"key"`
	Count            int     `json:"count"`
	TotalTimeSeconds int     `json:"totalTimeSeconds"`
	SuccessRate      float64 `json:"successRate"` // over events carrying an outcome
	TopicID          string  `json:"topicId,omitempty"`
	ResourceType     string  `json:"resourceType,omitempty"`
}

// Session is the derived engagement view of events sharing a session id.
type Session struct {
	SessionID       string  `json:"sessionId"`
	Events          int     `json:"events"`
	DurationSeconds float64 `json:"durationSeconds"`
	Bounce          bool    `json:"bounce"`
}

// EngagementSummary reports session counts and the bounce ratio.
type EngagementSummary struct {
	Sessions           []Session `json:"sessions"`
	SessionCount       int       `json:"sessionCount"`
	BounceCount        int       `json:"bounceCount"`
	BounceRate         float64   `json:"bounceRate"`
	AvgDurationSeconds float64   `json:"avgDurationSeconds"`
}

// Aggregate buckets events by the requested dimension. Buckets come back
// in first-seen order; input events are never mutated.
func Aggregate(events []model.InteractionEvent, g Granularity) []Bucket {
	index := make(map[string]int)
	buckets := make([]Bucket, 0)
	outcomes := make(map[string]int)
	successes := make(map[string]int)

	for i := range events {
		e := &events[i]
		key := bucketKey(e, g)

		pos, ok := index[key]
		if !ok {
			pos = len(buckets)
			index[key] = pos
			b := Bucket{Key: key}
			if g == ByTopic || g == ByResource {
				// first-seen metadata, by arrival order
				b.TopicID = e.TopicID
				b.ResourceType = e.ResourceType
			}
			buckets = append(buckets, b)
		}

		buckets[pos].Count++
		buckets[pos].TotalTimeSeconds += e.TimeSpentSeconds
		if e.Succeeded != nil {
			outcomes[key]++
			if *e.Succeeded {
				successes[key]++
			}
		}
	}

	for i := range buckets {
		if n := outcomes[buckets[i].Key]; n > 0 {
			buckets[i].SuccessRate = float64(successes[buckets[i].Key]) / float64(n)
		}
	}
	return buckets
}

// Sessions groups events by session id. Session duration is the span
// between the earliest and latest event timestamps; a single-event session
// has duration 0 and counts as a bounce.
func Sessions(events []model.InteractionEvent) EngagementSummary {
	type span struct {
		min, max time.Time
		count    int
	}
	order := make([]string, 0)
	spans := make(map[string]*span)

	for i := range events {
		e := &events[i]
		s, ok := spans[e.SessionID]
		if !ok {
			s = &span{min: e.OccurredAt, max: e.OccurredAt}
			spans[e.SessionID] = s
			order = append(order, e.SessionID)
		}
		s.count++
		if e.OccurredAt.Before(s.min) {
			s.min = e.OccurredAt
		}
		if e.OccurredAt.After(s.max) {
			s.max = e.OccurredAt
		}
	}

	summary := EngagementSummary{Sessions: make([]Session, 0, len(order))}
	var totalDuration float64
	for _, id := range order {
		s := spans[id]
		duration := s.max.Sub(s.min).Seconds()
		bounce := s.count == 1
		if bounce {
			summary.BounceCount++
		}
		totalDuration += duration
		summary.Sessions = append(summary.Sessions, Session{
			SessionID:       id,
			Events:          s.count,
			DurationSeconds: duration,
			Bounce:          bounce,
		})
	}
	summary.SessionCount = len(summary.Sessions)
	if summary.SessionCount > 0 {
		summary.BounceRate = float64(summary.BounceCount) / float64(summary.SessionCount)
		summary.AvgDurationSeconds = totalDuration / float64(summary.SessionCount)
	}
	return summary
}

// TopicScore is the per-topic outcome summary used by the
// strengths/struggles recompute.
type TopicScore struct {
	Attempts   int
	SuccessPct float64 // 0-100
}

// TopicScores folds attempt events carrying an outcome into per-topic
// success percentages.
func TopicScores(events []model.InteractionEvent) map[string]TopicScore {
	counts := make(map[string]int)
	success := make(map[string]int)
	for i := range events {
		e := &events[i]
		if e.TopicID == "" || e.Succeeded == nil {
			continue
		}
		counts[e.TopicID]++
		if *e.Succeeded {
			success[e.TopicID]++
		}
	}
	out := make(map[string]TopicScore, len(counts))
	for topic, n := range counts {
		out[topic] = TopicScore{
			Attempts:   n,
			SuccessPct: float64(success[topic]) / float64(n) * 100,
		}
	}
	return out
}

func bucketKey(e *model.InteractionEvent, g Granularity) string {
	switch g {
	case ByTopic:
		return e.TopicID
	case ByResource:
		return e.ResourceType + ":" + strconv.FormatUint(uint64(e.ResourceID), 10)
	default:
		return e.OccurredAt.UTC().Format("2006-01-02")
	}
}
