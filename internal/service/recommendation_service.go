package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"learning_pulse_backend/internal/model"
	"learning_pulse_backend/internal/progress"
	"learning_pulse_backend/internal/repository"
	"learning_pulse_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const recommendationCacheTTL = 5 * time.Minute

func recommendationCacheKey(studentID uint, kind progress.EntryKind) string {
	return fmt.Sprintf("pulse:rec:%d:%s", studentID, kind)
}

// RecommendationService builds the per-student catalog view and runs the
// recommender over it, with a short redis cache in front.
type RecommendationService struct {
	ProgressRepo   *repository.ProgressRepository
	ActivityRepo   *repository.ActivityRepository
	AssessmentRepo *repository.AssessmentRepository
	PathRepo       *repository.LearningPathRepository
	ConsentRepo    *repository.ConsentRepository
	Redis          *redis.Client
	Recommender    *progress.Recommender
}

func NewRecommendationService(
	progressRepo *repository.ProgressRepository,
	activityRepo *repository.ActivityRepository,
	assessmentRepo *repository.AssessmentRepository,
	pathRepo *repository.LearningPathRepository,
	consentRepo *repository.ConsentRepository,
	rdb *redis.Client,
	cfg progress.Config,
) *RecommendationService {
	return &RecommendationService{
		ProgressRepo:   progressRepo,
		ActivityRepo:   activityRepo,
		AssessmentRepo: assessmentRepo,
		PathRepo:       pathRepo,
		ConsentRepo:    consentRepo,
		Redis:          rdb,
		Recommender:    progress.NewRecommender(cfg),
	}
}

// Recommend returns up to limit entries of the given kind for the student.
// Without personalization consent the student gets the anonymous cold-start
// set for the requested kind instead of a profile-driven one.
func (s *RecommendationService) Recommend(ctx context.Context, studentID uint, kind progress.EntryKind, limit int) ([]progress.CatalogEntry, error) {
	cacheKey := recommendationCacheKey(studentID, kind)
	if limit <= 0 && s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var entries []progress.CatalogEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return entries, nil
			}
		}
	}

	catalog, err := s.buildCatalog(kind)
	if err != nil {
		return nil, err
	}

	var p *model.StudentProgress
	consent, err := s.ConsentRepo.FindByStudentID(studentID)
	if err != nil {
		return nil, err
	}
	if consent.AllowPersonalization {
		p, err = s.ProgressRepo.FindByStudentID(studentID)
		if err != nil {
			return nil, err
		}
	}

	entries := s.Recommender.Recommend(p, catalog, kind, limit)

	if limit <= 0 && s.Redis != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, payload, recommendationCacheTTL).Err(); err != nil {
				logger.Log.Warn("recommendation cache write failed", zap.Error(err))
			}
		}
	}
	return entries, nil
}

// buildCatalog resolves published rows into tagged entries, newest first.
func (s *RecommendationService) buildCatalog(kind progress.EntryKind) ([]progress.CatalogEntry, error) {
	switch kind {
	case progress.KindActivity:
		activities, err := s.ActivityRepo.FindAllPublished()
		if err != nil {
			return nil, err
		}
		entries := make([]progress.CatalogEntry, 0, len(activities))
		for i := range activities {
			entries = append(entries, progress.ActivityEntry(&activities[i]))
		}
		return entries, nil

	case progress.KindAssessment:
		assessments, err := s.AssessmentRepo.FindAllPublished()
		if err != nil {
			return nil, err
		}
		entries := make([]progress.CatalogEntry, 0, len(assessments))
		for i := range assessments {
			entries = append(entries, progress.AssessmentEntry(&assessments[i]))
		}
		return entries, nil

	case progress.KindPath:
		paths, err := s.PathRepo.FindAllPublished()
		if err != nil {
			return nil, err
		}
		entries := make([]progress.CatalogEntry, 0, len(paths))
		for i := range paths {
			entries = append(entries, progress.PathEntry(&paths[i]))
		}
		return entries, nil
	}

	return nil, fmt.Errorf("unknown catalog kind %q: %w", kind, progress.ErrInvalidInput)
}
