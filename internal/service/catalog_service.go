package service

import (
	"learning_pulse_backend/internal/model"
	"learning_pulse_backend/internal/repository"
)

// CatalogService manages the learnable content students complete:
// activities, assessments and learning paths.
type CatalogService struct {
	ActivityRepo   *repository.ActivityRepository
	AssessmentRepo *repository.AssessmentRepository
	PathRepo       *repository.LearningPathRepository
}

func NewCatalogService(
	activityRepo *repository.ActivityRepository,
	assessmentRepo *repository.AssessmentRepository,
	pathRepo *repository.LearningPathRepository,
) *CatalogService {
	return &CatalogService{
		ActivityRepo:   activityRepo,
		AssessmentRepo: assessmentRepo,
		PathRepo:       pathRepo,
	}
}

type ActivityRequest struct {
	Title              string             `json:"title" binding:"required"`
	Description        string             `json:"description"`
	Topic              string             `json:"topic" binding:"required"`
	Type               model.ActivityType `json:"type"`
	DifficultyLevel    model.SkillLevel   `json:"difficultyLevel"`
	Points             int                `json:"points"`
	LearningObjectives []string           `json:"learningObjectives"`
	EstimatedMinutes   int                `json:"estimatedMinutes"`
	IsPublished        *bool              `json:"isPublished"`
}

type AssessmentRequest struct {
	Title           string           `json:"title" binding:"required"`
	Description     string           `json:"description"`
	Topic           string           `json:"topic" binding:"required"`
	DifficultyLevel model.SkillLevel `json:"difficultyLevel"`
	Points          int              `json:"points"`
	QuestionCount   int              `json:"questionCount"`
	PassingScore    int              `json:"passingScore"`
	IsPublished     *bool            `json:"isPublished"`
}

type PathNodeRequest struct {
	ActivityID uint `json:"activityId" binding:"required"`
	Position   int  `json:"position"`
}

type LearningPathRequest struct {
	Title              string            `json:"title" binding:"required"`
	Description        string            `json:"description"`
	Topic              string            `json:"topic"`
	RequiredSkillLevel model.SkillLevel  `json:"requiredSkillLevel"`
	IsPublished        *bool             `json:"isPublished"`
	Nodes              []PathNodeRequest `json:"nodes"`
}

func (s *CatalogService) CreateActivity(req *ActivityRequest, creatorID uint) (*model.Activity, error) {
	activity := &model.Activity{
		Title:              req.Title,
		Description:        req.Description,
		Topic:              req.Topic,
		Type:               req.Type,
		DifficultyLevel:    req.DifficultyLevel,
		Points:             req.Points,
		LearningObjectives: req.LearningObjectives,
		EstimatedMinutes:   req.EstimatedMinutes,
		CreatorID:          creatorID,
	}
	if activity.Type == "" {
		activity.Type = model.ActivityExercise
	}
	if activity.DifficultyLevel == "" {
		activity.DifficultyLevel = model.SkillBeginner
	}
	if req.IsPublished != nil {
		activity.IsPublished = *req.IsPublished
	}
	if err := s.ActivityRepo.Create(activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *CatalogService) GetActivity(id uint) (*model.Activity, error) {
	return s.ActivityRepo.FindByID(id)
}

func (s *CatalogService) ListActivities(activityType model.ActivityType, topic string, publishedOnly bool, page, limit int) ([]model.Activity, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.ActivityRepo.List(activityType, topic, publishedOnly, page, limit)
}

func (s *CatalogService) UpdateActivity(id uint, req *ActivityRequest) (*model.Activity, error) {
	activity, err := s.ActivityRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	activity.Title = req.Title
	activity.Description = req.Description
	activity.Topic = req.Topic
	if req.Type != "" {
		activity.Type = req.Type
	}
	if req.DifficultyLevel != "" {
		activity.DifficultyLevel = req.DifficultyLevel
	}
	activity.Points = req.Points
	activity.LearningObjectives = req.LearningObjectives
	activity.EstimatedMinutes = req.EstimatedMinutes
	if req.IsPublished != nil {
		activity.IsPublished = *req.IsPublished
	}

	if err := s.ActivityRepo.Update(activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *CatalogService) DeleteActivity(id uint) error {
	if _, err := s.ActivityRepo.FindByID(id); err != nil {
		return err
	}
	return s.ActivityRepo.Delete(id)
}

func (s *CatalogService) CreateAssessment(req *AssessmentRequest, creatorID uint) (*model.Assessment, error) {
	assessment := &model.Assessment{
		Title:           req.Title,
		Description:     req.Description,
		Topic:           req.Topic,
		DifficultyLevel: req.DifficultyLevel,
		Points:          req.Points,
		QuestionCount:   req.QuestionCount,
		PassingScore:    req.PassingScore,
		CreatorID:       creatorID,
	}
	if assessment.DifficultyLevel == "" {
		assessment.DifficultyLevel = model.SkillBeginner
	}
	if assessment.PassingScore == 0 {
		assessment.PassingScore = 60
	}
	if req.IsPublished != nil {
		assessment.IsPublished = *req.IsPublished
	}
	if err := s.AssessmentRepo.Create(assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

func (s *CatalogService) GetAssessment(id uint) (*model.Assessment, error) {
	return s.AssessmentRepo.FindByID(id)
}

func (s *CatalogService) ListAssessments(topic string, publishedOnly bool, page, limit int) ([]model.Assessment, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.AssessmentRepo.List(topic, publishedOnly, page, limit)
}

func (s *CatalogService) UpdateAssessment(id uint, req *AssessmentRequest) (*model.Assessment, error) {
	assessment, err := s.AssessmentRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	assessment.Title = req.Title
	assessment.Description = req.Description
	assessment.Topic = req.Topic
	if req.DifficultyLevel != "" {
		assessment.DifficultyLevel = req.DifficultyLevel
	}
	assessment.Points = req.Points
	assessment.QuestionCount = req.QuestionCount
	if req.PassingScore > 0 {
		assessment.PassingScore = req.PassingScore
	}
	if req.IsPublished != nil {
		assessment.IsPublished = *req.IsPublished
	}

	if err := s.AssessmentRepo.Update(assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

func (s *CatalogService) DeleteAssessment(id uint) error {
	if _, err := s.AssessmentRepo.FindByID(id); err != nil {
		return err
	}
	return s.AssessmentRepo.Delete(id)
}

func (s *CatalogService) CreateLearningPath(req *LearningPathRequest, creatorID uint) (*model.LearningPath, error) {
	path := &model.LearningPath{
		Title:              req.Title,
		Description:        req.Description,
		Topic:              req.Topic,
		RequiredSkillLevel: req.RequiredSkillLevel,
		CreatorID:          creatorID,
	}
	if path.RequiredSkillLevel == "" {
		path.RequiredSkillLevel = model.SkillBeginner
	}
	if req.IsPublished != nil {
		path.IsPublished = *req.IsPublished
	}
	for _, n := range req.Nodes {
		path.Nodes = append(path.Nodes, model.PathNode{
			ActivityID: n.ActivityID,
			Position:   n.Position,
		})
	}
	if err := s.PathRepo.Create(path); err != nil {
		return nil, err
	}
	return path, nil
}

func (s *CatalogService) GetLearningPath(id uint) (*model.LearningPath, error) {
	return s.PathRepo.FindByID(id)
}

func (s *CatalogService) ListLearningPaths(publishedOnly bool, page, limit int) ([]model.LearningPath, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.PathRepo.List(publishedOnly, page, limit)
}

func (s *CatalogService) UpdateLearningPath(id uint, req *LearningPathRequest) (*model.LearningPath, error) {
	path, err := s.PathRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	path.Title = req.Title
	path.Description = req.Description
	path.Topic = req.Topic
	if req.RequiredSkillLevel != "" {
		path.RequiredSkillLevel = req.RequiredSkillLevel
	}
	if req.IsPublished != nil {
		path.IsPublished = *req.IsPublished
	}
	path.Nodes = path.Nodes[:0]
	for _, n := range req.Nodes {
		path.Nodes = append(path.Nodes, model.PathNode{
			PathID:     path.ID,
			ActivityID: n.ActivityID,
			Position:   n.Position,
		})
	}

	if err := s.PathRepo.Update(path); err != nil {
		return nil, err
	}
	return path, nil
}

func (s *CatalogService) DeleteLearningPath(id uint) error {
	if _, err := s.PathRepo.FindByID(id); err != nil {
		return err
	}
	return s.PathRepo.Delete(id)
}
