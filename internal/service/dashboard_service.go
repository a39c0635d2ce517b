package service

import (
	"context"
	"encoding/json"
	"time"

	"learning_pulse_backend/internal/model"
	"learning_pulse_backend/internal/progress"
	"learning_pulse_backend/internal/repository"
	"learning_pulse_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	dashboardOverviewKey = "pulse:dashboard:overview"
	leaderboardKey       = "pulse:leaderboard"
	dashboardCacheTTL    = time.Minute
)

// DashboardService serves the student home screen and the teacher/admin
// overview widgets.
type DashboardService struct {
	ProgressRepo   *repository.ProgressRepository
	AnalyticsRepo  *repository.AnalyticsRepository
	UserRepo       *repository.UserRepository
	Recommendation *RecommendationService
	Redis          *redis.Client
	Mapper         *progress.BloomMapper
}

func NewDashboardService(
	progressRepo *repository.ProgressRepository,
	analyticsRepo *repository.AnalyticsRepository,
	userRepo *repository.UserRepository,
	recommendationSvc *RecommendationService,
	rdb *redis.Client,
	cfg progress.Config,
) *DashboardService {
	return &DashboardService{
		ProgressRepo:   progressRepo,
		AnalyticsRepo:  analyticsRepo,
		UserRepo:       userRepo,
		Recommendation: recommendationSvc,
		Redis:          rdb,
		Mapper:         progress.NewBloomMapper(cfg),
	}
}

type Overview struct {
	SkillDistribution map[model.SkillLevel]int64 `json:"skillDistribution"`
	EventsLast7Days   int64                      `json:"eventsLast7Days"`
	GeneratedAt       time.Time                  `json:"generatedAt"`
}

type LeaderboardEntry struct {
	StudentID     uint             `json:"studentId"`
	Name          string           `json:"name"`
	TotalPoints   int              `json:"totalPoints"`
	SkillLevel    model.SkillLevel `json:"skillLevel"`
	CurrentStreak int              `json:"currentStreak"`
}

// StudentOverview is the home-screen payload for one student: the full
// aggregate, the Bloom band they are working toward and a short list of
// recommended activities.
type StudentOverview struct {
	Progress        *model.StudentProgress  `json:"progress"`
	MasteryPct      float64                 `json:"masteryPct"`
	BloomBand       progress.BloomBand      `json:"bloomBand"`
	BloomNextTarget progress.BloomBand      `json:"bloomNextTarget"`
	Recommendations []progress.CatalogEntry `json:"recommendations"`
}

func (s *DashboardService) GetStudentOverview(ctx context.Context, studentID uint) (*StudentOverview, error) {
	p, err := s.ProgressRepo.FindByStudentID(studentID)
	if err != nil {
		return nil, err
	}

	mastery := 0.0
	if len(p.AssessmentResults) > 0 {
		sum := 0
		for _, r := range p.AssessmentResults {
			sum += r.Score
		}
		mastery = float64(sum) / float64(len(p.AssessmentResults))
	}

	recs, err := s.Recommendation.Recommend(ctx, studentID, progress.KindActivity, 0)
	if err != nil {
		return nil, err
	}

	return &StudentOverview{
		Progress:        p,
		MasteryPct:      mastery,
		BloomBand:       s.Mapper.LevelFor(mastery),
		BloomNextTarget: s.Mapper.NextTarget(mastery),
		Recommendations: recs,
	}, nil
}

func (s *DashboardService) GetOverview(ctx context.Context) (*Overview, error) {
	if cached := s.fromCache(ctx, dashboardOverviewKey, &Overview{}); cached != nil {
		return cached.(*Overview), nil
	}

	distribution, err := s.ProgressRepo.CountBySkillLevel()
	if err != nil {
		return nil, err
	}
	events, err := s.AnalyticsRepo.CountEventsSince(time.Now().AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}

	overview := &Overview{
		SkillDistribution: distribution,
		EventsLast7Days:   events,
		GeneratedAt:       time.Now(),
	}
	s.toCache(ctx, dashboardOverviewKey, overview)
	return overview, nil
}

func (s *DashboardService) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, leaderboardKey).Result(); err == nil {
			var entries []LeaderboardEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil && len(entries) >= limit {
				return entries[:limit], nil
			}
		}
	}

	rows, err := s.ProgressRepo.FindTopByPoints(50)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		name := ""
		if user, err := s.UserRepo.FindByID(row.StudentID); err == nil {
			name = user.Name
		}
		entries = append(entries, LeaderboardEntry{
			StudentID:     row.StudentID,
			Name:          name,
			TotalPoints:   row.TotalPoints,
			SkillLevel:    row.CurrentSkillLevel,
			CurrentStreak: row.CurrentStreak,
		})
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.Redis.Set(ctx, leaderboardKey, payload, dashboardCacheTTL).Err(); err != nil {
				logger.Log.Warn("leaderboard cache write failed", zap.Error(err))
			}
		}
	}

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *DashboardService) fromCache(ctx context.Context, key string, dst interface{}) interface{} {
	if s.Redis == nil {
		return nil
	}
	cached, err := s.Redis.Get(ctx, key).Result()
	if err != nil {
		return nil
	}
	if err := json.Unmarshal([]byte(cached), dst); err != nil {
		return nil
	}
	return dst
}

func (s *DashboardService) toCache(ctx context.Context, key string, v interface{}) {
	if s.Redis == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, key, payload, dashboardCacheTTL).Err(); err != nil {
		logger.Log.Warn("dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}
