package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"learning_pulse_backend/internal/model"
	"learning_pulse_backend/internal/progress"
	"learning_pulse_backend/internal/repository"
	"learning_pulse_backend/pkg/logger"
	"learning_pulse_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProgressService orchestrates the pure progress core against storage.
// Every write loads the aggregate, applies the in-memory transition and
// saves the whole thing back in one transaction.
type ProgressService struct {
	ProgressRepo   *repository.ProgressRepository
	ActivityRepo   *repository.ActivityRepository
	AssessmentRepo *repository.AssessmentRepository
	PathRepo       *repository.LearningPathRepository
	AnalyticsRepo  *repository.AnalyticsRepository
	Redis          *redis.Client
	Recorder       *progress.Recorder
	Cfg            progress.Config
}

func NewProgressService(
	progressRepo *repository.ProgressRepository,
	activityRepo *repository.ActivityRepository,
	assessmentRepo *repository.AssessmentRepository,
	pathRepo *repository.LearningPathRepository,
	analyticsRepo *repository.AnalyticsRepository,
	rdb *redis.Client,
	cfg progress.Config,
) *ProgressService {
	return &ProgressService{
		ProgressRepo:   progressRepo,
		ActivityRepo:   activityRepo,
		AssessmentRepo: assessmentRepo,
		PathRepo:       pathRepo,
		AnalyticsRepo:  analyticsRepo,
		Redis:          rdb,
		Recorder:       progress.NewRecorder(cfg),
		Cfg:            cfg,
	}
}

type CompleteActivityRequest struct {
	Score            *int `json:"score"`
	TimeSpentMinutes *int `json:"timeSpentMinutes" binding:"required"`
	HintsUsed        int  `json:"hintsUsed"`
}

type SubmitAssessmentRequest struct {
	Score            int      `json:"score" binding:"min=0,max=100"`
	TimeSpentMinutes *int     `json:"timeSpentMinutes" binding:"required"`
	Responses        []string `json:"responses"`
}

type LearningGoalRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	TargetDate  time.Time `json:"targetDate"`
	SortOrder   int       `json:"sortOrder"`
}

type UpdateLearningGoalRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	TargetDate  *time.Time `json:"targetDate"`
	IsCompleted *bool      `json:"isCompleted"`
	Progress    *int       `json:"progress"`
	SortOrder   *int       `json:"sortOrder"`
}

type AssessmentOutcome struct {
	Result *model.AssessmentResult `json:"result"`
	Passed bool                    `json:"passed"`
	First  bool                    `json:"first"`
}

func (s *ProgressService) GetProgress(studentID uint) (*model.StudentProgress, error) {
	return s.ProgressRepo.FindByStudentID(studentID)
}

func (s *ProgressService) CompleteActivity(ctx context.Context, studentID, activityID uint, req *CompleteActivityRequest) (*model.StudentProgress, error) {
	p, err := s.ProgressRepo.FindByStudentID(studentID)
	if err != nil {
		return nil, err
	}

	activity, err := s.ActivityRepo.FindByID(activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("activity %d: %w", activityID, progress.ErrNotFound)
		}
		return nil, err
	}
	entry := progress.ActivityEntry(activity)

	first, err := s.Recorder.RecordCompletion(p, activityID, progress.CompletionInput{
		Score:            req.Score,
		TimeSpentMinutes: req.TimeSpentMinutes,
		HintsUsed:        req.HintsUsed,
	}, &entry, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.ProgressRepo.Save(p); err != nil {
		return nil, err
	}

	monitoring.ObserveCompletion("activity", first)
	s.invalidateCaches(ctx, studentID)
	return p, nil
}

func (s *ProgressService) SubmitAssessment(ctx context.Context, studentID, assessmentID uint, req *SubmitAssessmentRequest) (*AssessmentOutcome, error) {
	p, err := s.ProgressRepo.FindByStudentID(studentID)
	if err != nil {
		return nil, err
	}

	assessment, err := s.AssessmentRepo.FindByID(assessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("assessment %d: %w", assessmentID, progress.ErrNotFound)
		}
		return nil, err
	}
	entry := progress.AssessmentEntry(assessment)

	first, err := s.Recorder.RecordAssessment(p, assessmentID, progress.AssessmentInput{
		Score:            req.Score,
		TimeSpentMinutes: req.TimeSpentMinutes,
		Responses:        req.Responses,
	}, &entry, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.ProgressRepo.Save(p); err != nil {
		return nil, err
	}

	monitoring.ObserveCompletion("assessment", first)
	s.invalidateCaches(ctx, studentID)

	var result *model.AssessmentResult
	for i := range p.AssessmentResults {
		if p.AssessmentResults[i].AssessmentID == assessmentID {
			result = &p.AssessmentResults[i]
			break
		}
	}
	return &AssessmentOutcome{
		Result: result,
		Passed: req.Score >= assessment.PassingScore,
		First:  first,
	}, nil
}

func (s *ProgressService) EnrollInPath(ctx context.Context, studentID, pathID uint) (*model.StudentProgress, error) {
	p, err := s.ProgressRepo.FindByStudentID(studentID)
	if err != nil {
		return nil, err
	}

	path, err := s.PathRepo.FindByID(pathID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("learning path %d: %w", pathID, progress.ErrNotFound)
		}
		return nil, err
	}
	entry := progress.PathEntry(path)

	if err := progress.Enroll(p, &entry, pathID, time.Now()); err != nil {
		return nil, err
	}

	if err := s.ProgressRepo.Save(p); err != nil {
		return nil, err
	}
	s.invalidateCaches(ctx, studentID)
	return p, nil
}

func (s *ProgressService) CompletePathNode(ctx context.Context, studentID, pathID, nodeID uint) (*model.StudentProgress, error) {
	p, err := s.ProgressRepo.FindByStudentID(studentID)
	if err != nil {
		return nil, err
	}

	path, err := s.PathRepo.FindByID(pathID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("learning path %d: %w", pathID, progress.ErrNotFound)
		}
		return nil, err
	}

	found := false
	for _, n := range path.Nodes {
		if n.ID == nodeID {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("node %d in path %d: %w", nodeID, pathID, progress.ErrNotFound)
	}

	if err := progress.CompleteNode(p, pathID, nodeID, len(path.Nodes), time.Now()); err != nil {
		return nil, err
	}

	if err := s.ProgressRepo.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProgressService) CreateGoal(studentID uint, req *LearningGoalRequest) (*model.LearningGoal, error) {
	p, err := s.ProgressRepo.FindByStudentID(studentID)
	if err != nil {
		return nil, err
	}

	goal := &model.LearningGoal{
		ProgressID:  p.ID,
		Title:       req.Title,
		Description: req.Description,
		TargetDate:  req.TargetDate,
		SortOrder:   req.SortOrder,
	}
	if err := s.ProgressRepo.CreateGoal(goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *ProgressService) UpdateGoal(studentID uint, goalID string, req *UpdateLearningGoalRequest) (*model.LearningGoal, error) {
	p, err := s.ProgressRepo.FindByStudentID(studentID)
	if err != nil {
		return nil, err
	}

	goal, err := s.ProgressRepo.FindGoalByUUID(p.ID, goalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("goal %s: %w", goalID, progress.ErrNotFound)
		}
		return nil, err
	}

	if req.Title != "" {
		goal.Title = req.Title
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.TargetDate != nil {
		goal.TargetDate = *req.TargetDate
	}
	if req.IsCompleted != nil {
		goal.IsCompleted = *req.IsCompleted
		if goal.IsCompleted {
			goal.Progress = 100
		}
	}
	if req.Progress != nil {
		if *req.Progress < 0 || *req.Progress > 100 {
			return nil, fmt.Errorf("progress must be 0-100: %w", progress.ErrInvalidInput)
		}
		goal.Progress = *req.Progress
	}
	if req.SortOrder != nil {
		goal.SortOrder = *req.SortOrder
	}

	if err := s.ProgressRepo.UpdateGoal(goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *ProgressService) DeleteGoal(studentID uint, goalID string) error {
	p, err := s.ProgressRepo.FindByStudentID(studentID)
	if err != nil {
		return err
	}
	if _, err := s.ProgressRepo.FindGoalByUUID(p.ID, goalID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("goal %s: %w", goalID, progress.ErrNotFound)
		}
		return err
	}
	return s.ProgressRepo.DeleteGoal(p.ID, goalID)
}

// RecomputeInsights refreshes the derived strengths, struggling topics and
// preferred activity types from raw analytics events and completions. It
// runs out of the completion write path, on demand or on a schedule.
func (s *ProgressService) RecomputeInsights(ctx context.Context, studentID uint) (*model.StudentProgress, error) {
	p, err := s.ProgressRepo.FindByStudentID(studentID)
	if err != nil {
		return nil, err
	}

	events, err := s.AnalyticsRepo.FindByStudent(studentID, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}

	scores := progress.TopicScores(events)
	strengths := make([]string, 0)
	struggles := make([]string, 0)
	topics := make([]string, 0, len(scores))
	for topic := range scores {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	for _, topic := range topics {
		sc := scores[topic]
		if sc.Attempts < s.Cfg.MinTopicAttempts {
			continue
		}
		switch {
		case sc.SuccessPct >= s.Cfg.StrengthAtLeast:
			strengths = append(strengths, topic)
		case sc.SuccessPct < s.Cfg.StruggleBelow:
			struggles = append(struggles, topic)
		}
	}
	p.Strengths = strengths
	p.StrugglingTopics = struggles
	p.PreferredActivityTypes = s.preferredTypes(p)

	if err := s.ProgressRepo.Save(p); err != nil {
		return nil, err
	}
	s.invalidateCaches(ctx, studentID)
	return p, nil
}

// preferredTypes ranks activity types by completion count, keeping types
// with at least two completions, most used first.
func (s *ProgressService) preferredTypes(p *model.StudentProgress) []string {
	counts := make(map[model.ActivityType]int)
	for _, c := range p.CompletedActivities {
		activity, err := s.ActivityRepo.FindByID(c.ActivityID)
		if err != nil {
			continue
		}
		counts[activity.Type]++
	}

	type kv struct {
		t model.ActivityType
		n int
	}
	ranked := make([]kv, 0, len(counts))
	for t, n := range counts {
		if n >= 2 {
			ranked = append(ranked, kv{t, n})
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].n != ranked[j].n {
			return ranked[i].n > ranked[j].n
		}
		return ranked[i].t < ranked[j].t
	})

	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, string(r.t))
	}
	return out
}

func (s *ProgressService) invalidateCaches(ctx context.Context, studentID uint) {
	if s.Redis == nil {
		return
	}
	keys := []string{
		recommendationCacheKey(studentID, progress.KindActivity),
		recommendationCacheKey(studentID, progress.KindAssessment),
		recommendationCacheKey(studentID, progress.KindPath),
		dashboardOverviewKey,
		leaderboardKey,
	}
	if err := s.Redis.Del(ctx, keys...).Err(); err != nil {
		logger.Log.Warn("cache invalidation failed", zap.Uint("studentId", studentID), zap.Error(err))
	}
}
