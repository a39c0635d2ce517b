package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"time"

	"learning_pulse_backend/internal/model"
	"learning_pulse_backend/internal/progress"
	"learning_pulse_backend/internal/repository"

	"gorm.io/gorm"
)

// AnalyticsService ingests raw interaction events and serves aggregated
// views. Ingestion is consent-gated; events for students without analytics
// consent are dropped, not stored.
type AnalyticsService struct {
	AnalyticsRepo  *repository.AnalyticsRepository
	ConsentRepo    *repository.ConsentRepository
	ProgressRepo   *repository.ProgressRepository
	AssessmentRepo *repository.AssessmentRepository
	Mapper         *progress.BloomMapper
}

func NewAnalyticsService(
	analyticsRepo *repository.AnalyticsRepository,
	consentRepo *repository.ConsentRepository,
	progressRepo *repository.ProgressRepository,
	assessmentRepo *repository.AssessmentRepository,
	cfg progress.Config,
) *AnalyticsService {
	return &AnalyticsService{
		AnalyticsRepo:  analyticsRepo,
		ConsentRepo:    consentRepo,
		ProgressRepo:   progressRepo,
		AssessmentRepo: assessmentRepo,
		Mapper:         progress.NewBloomMapper(cfg),
	}
}

type LogEventRequest struct {
	SessionID        string     `json:"sessionId"`
	EventType        string     `json:"eventType" binding:"required"`
	TopicID          string     `json:"topicId"`
	ResourceType     string     `json:"resourceType"`
	ResourceID       uint       `json:"resourceId"`
	TimeSpentSeconds int        `json:"timeSpentSeconds"`
	Succeeded        *bool      `json:"succeeded"`
	OccurredAt       *time.Time `json:"occurredAt"`
}

type BloomTopicMastery struct {
	Topic      string             `json:"topic"`
	MasteryPct float64            `json:"masteryPct"`
	Band       progress.BloomBand `json:"band"`
	NextTarget progress.BloomBand `json:"nextTarget"`
}

// LogEvents stores a batch of events for one student. The returned count
// is how many were actually accepted; zero with a nil error means the
// student has not consented to analytics.
func (s *AnalyticsService) LogEvents(ctx context.Context, studentID uint, reqs []LogEventRequest, clientIP, userAgent string) (int, error) {
	consent, err := s.ConsentRepo.FindByStudentID(studentID)
	if err != nil {
		return 0, err
	}
	if !consent.AllowAnalytics {
		return 0, nil
	}

	ipHash := hashIP(clientIP)
	now := time.Now()

	events := make([]model.InteractionEvent, 0, len(reqs))
	for _, r := range reqs {
		occurred := now
		if r.OccurredAt != nil && !r.OccurredAt.IsZero() {
			occurred = *r.OccurredAt
		}
		events = append(events, model.InteractionEvent{
			StudentID:        studentID,
			SessionID:        r.SessionID,
			EventType:        r.EventType,
			TopicID:          r.TopicID,
			ResourceType:     r.ResourceType,
			ResourceID:       r.ResourceID,
			TimeSpentSeconds: r.TimeSpentSeconds,
			Succeeded:        r.Succeeded,
			IPHash:           ipHash,
			UserAgent:        userAgent,
			OccurredAt:       occurred,
		})
	}

	if err := s.AnalyticsRepo.CreateEvents(events); err != nil {
		return 0, err
	}
	return len(events), nil
}

func (s *AnalyticsService) StudentSummary(studentID uint, g progress.Granularity, from, to time.Time) ([]progress.Bucket, error) {
	if g != progress.ByDay && g != progress.ByTopic && g != progress.ByResource {
		return nil, fmt.Errorf("granularity %q: %w", g, progress.ErrInvalidInput)
	}
	events, err := s.AnalyticsRepo.FindByStudent(studentID, from, to)
	if err != nil {
		return nil, err
	}
	return progress.Aggregate(events, g), nil
}

func (s *AnalyticsService) StudentEngagement(studentID uint, from, to time.Time) (*progress.EngagementSummary, error) {
	events, err := s.AnalyticsRepo.FindByStudent(studentID, from, to)
	if err != nil {
		return nil, err
	}
	summary := progress.Sessions(events)
	return &summary, nil
}

func (s *AnalyticsService) TopicSummary(topicID string, from, to time.Time) ([]progress.Bucket, error) {
	events, err := s.AnalyticsRepo.FindByTopic(topicID, from, to)
	if err != nil {
		return nil, err
	}
	return progress.Aggregate(events, progress.ByDay), nil
}

// BloomMastery maps per-topic average assessment scores onto the Bloom
// band table, giving teachers the scaffolding view per topic.
func (s *AnalyticsService) BloomMastery(studentID uint) ([]BloomTopicMastery, error) {
	p, err := s.ProgressRepo.FindByStudentID(studentID)
	if err != nil {
		return nil, err
	}

	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, r := range p.AssessmentResults {
		assessment, err := s.AssessmentRepo.FindByID(r.AssessmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		sums[assessment.Topic] += r.Score
		counts[assessment.Topic]++
	}

	topics := make([]string, 0, len(counts))
	for topic := range counts {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	out := make([]BloomTopicMastery, 0, len(topics))
	for _, topic := range topics {
		mastery := float64(sums[topic]) / float64(counts[topic])
		out = append(out, BloomTopicMastery{
			Topic:      topic,
			MasteryPct: mastery,
			Band:       s.Mapper.LevelFor(mastery),
			NextTarget: s.Mapper.NextTarget(mastery),
		})
	}
	return out, nil
}

func hashIP(ip string) string {
	if ip == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:])
}
