package service

import (
	"context"
	"errors"
	"time"

	"learning_pulse_backend/internal/model"
	"learning_pulse_backend/internal/repository"
	"learning_pulse_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MockDataService seeds a small, self-consistent demo dataset so a fresh
// install has something to show. Seeding is idempotent: it bails out as
// soon as it finds the demo teacher account.
type MockDataService struct {
	UserRepo       *repository.UserRepository
	CourseRepo     *repository.CourseRepository
	ActivityRepo   *repository.ActivityRepository
	AssessmentRepo *repository.AssessmentRepository
	PathRepo       *repository.LearningPathRepository
	ConsentRepo    *repository.ConsentRepository
	Progress       *ProgressService
	Analytics      *AnalyticsService
}

func NewMockDataService(
	userRepo *repository.UserRepository,
	courseRepo *repository.CourseRepository,
	activityRepo *repository.ActivityRepository,
	assessmentRepo *repository.AssessmentRepository,
	pathRepo *repository.LearningPathRepository,
	consentRepo *repository.ConsentRepository,
	progressSvc *ProgressService,
	analyticsSvc *AnalyticsService,
) *MockDataService {
	return &MockDataService{
		UserRepo:       userRepo,
		CourseRepo:     courseRepo,
		ActivityRepo:   activityRepo,
		AssessmentRepo: assessmentRepo,
		PathRepo:       pathRepo,
		ConsentRepo:    consentRepo,
		Progress:       progressSvc,
		Analytics:      analyticsSvc,
	}
}

const demoTeacherEmail = "teacher@demo.learningpulse.local"

func (s *MockDataService) Seed(ctx context.Context) error {
	if _, err := s.UserRepo.FindByEmail(demoTeacherEmail); err == nil {
		logger.Log.Info("demo data already present, skipping seed")
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("demo-pass-123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	teacher := &model.User{
		Name:     "Dana Rivers",
		Email:    demoTeacherEmail,
		Password: string(hashed),
		Role:     model.Teacher,
	}
	if err := s.UserRepo.Create(teacher); err != nil {
		return err
	}

	students := []*model.User{
		{Name: "Avery Chen", Email: "avery@demo.learningpulse.local", GradeLevel: "4"},
		{Name: "Noah Patel", Email: "noah@demo.learningpulse.local", GradeLevel: "5"},
		{Name: "Mia Okafor", Email: "mia@demo.learningpulse.local", GradeLevel: "4"},
	}
	for _, st := range students {
		st.Password = string(hashed)
		st.Role = model.Student
		if err := s.UserRepo.Create(st); err != nil {
			return err
		}
		if err := s.ConsentRepo.Upsert(&model.ConsentRecord{
			StudentID:            st.ID,
			AllowAnalytics:       true,
			AllowPersonalization: true,
		}); err != nil {
			return err
		}
	}

	course := &model.Course{
		Title:       "Intro to Programming with Blocks",
		Description: "First steps in computational thinking for grades 3-5.",
		Subject:     "computer-science",
		GradeBand:   "3-5",
		CreatorID:   teacher.ID,
		IsPublished: true,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return err
	}

	lessons := []model.Lesson{
		{CourseID: course.ID, Title: "What is an algorithm?", Type: model.LessonArticle, SortOrder: 1, IsPublished: true, UploaderID: teacher.ID},
		{CourseID: course.ID, Title: "Loops in everyday life", Type: model.LessonVideo, Duration: 312, Format: "mp4", SortOrder: 2, IsPublished: true, UploaderID: teacher.ID},
		{CourseID: course.ID, Title: "Loop practice sheet", Type: model.LessonWorksheet, SortOrder: 3, IsPublished: true, UploaderID: teacher.ID},
	}
	for i := range lessons {
		if err := s.CourseRepo.CreateLesson(&lessons[i]); err != nil {
			return err
		}
	}

	activities := []model.Activity{
		{Title: "Maze Runner", Topic: "sequencing", Type: model.ActivityGame, DifficultyLevel: model.SkillBeginner, Points: 100, LearningObjectives: []string{"order steps to reach a goal"}, EstimatedMinutes: 10, IsPublished: true, CreatorID: teacher.ID},
		{Title: "Loop the Loop", Topic: "loops", Type: model.ActivityExercise, DifficultyLevel: model.SkillBeginner, Points: 150, LearningObjectives: []string{"use repeat blocks", "spot repeated patterns in loops"}, EstimatedMinutes: 15, IsPublished: true, CreatorID: teacher.ID},
		{Title: "Debug the Robot", Topic: "debugging", Type: model.ActivityExercise, DifficultyLevel: model.SkillBeginner, Points: 150, LearningObjectives: []string{"find and fix a broken program"}, EstimatedMinutes: 15, IsPublished: true, CreatorID: teacher.ID},
		{Title: "Build a Story Animation", Topic: "events", Type: model.ActivityProject, DifficultyLevel: model.SkillIntermediate, Points: 300, LearningObjectives: []string{"trigger actions with events"}, EstimatedMinutes: 40, IsPublished: true, CreatorID: teacher.ID},
		{Title: "Nested Loop Patterns", Topic: "loops", Type: model.ActivityExercise, DifficultyLevel: model.SkillIntermediate, Points: 250, LearningObjectives: []string{"combine loops inside loops"}, EstimatedMinutes: 25, IsPublished: true, CreatorID: teacher.ID},
	}
	for i := range activities {
		if err := s.ActivityRepo.Create(&activities[i]); err != nil {
			return err
		}
	}

	assessments := []model.Assessment{
		{Title: "Sequencing Check", Topic: "sequencing", DifficultyLevel: model.SkillBeginner, Points: 100, QuestionCount: 5, PassingScore: 60, IsPublished: true, CreatorID: teacher.ID},
		{Title: "Loops Quiz", Topic: "loops", DifficultyLevel: model.SkillBeginner, Points: 150, QuestionCount: 8, PassingScore: 60, IsPublished: true, CreatorID: teacher.ID},
	}
	for i := range assessments {
		if err := s.AssessmentRepo.Create(&assessments[i]); err != nil {
			return err
		}
	}

	path := &model.LearningPath{
		Title:              "Beginner Coding Journey",
		Description:        "From sequencing to your first debugged program.",
		Topic:              "sequencing",
		RequiredSkillLevel: model.SkillBeginner,
		IsPublished:        true,
		CreatorID:          teacher.ID,
		Nodes: []model.PathNode{
			{ActivityID: activities[0].ID, Position: 1},
			{ActivityID: activities[1].ID, Position: 2},
			{ActivityID: activities[2].ID, Position: 3},
		},
	}
	if err := s.PathRepo.Create(path); err != nil {
		return err
	}

	// Give the first demo student a little history so dashboards are not
	// empty on first login.
	avery := students[0]
	minutes := 12
	if _, err := s.Progress.CompleteActivity(ctx, avery.ID, activities[0].ID, &CompleteActivityRequest{
		TimeSpentMinutes: &minutes,
	}); err != nil {
		return err
	}
	score := 80
	if _, err := s.Progress.SubmitAssessment(ctx, avery.ID, assessments[0].ID, &SubmitAssessmentRequest{
		Score:            score,
		TimeSpentMinutes: &minutes,
	}); err != nil {
		return err
	}

	succeeded := true
	events := []LogEventRequest{
		{SessionID: "seed-1", EventType: "lesson_view", TopicID: "sequencing", ResourceType: "lesson", ResourceID: lessons[0].ID, TimeSpentSeconds: 240},
		{SessionID: "seed-1", EventType: "activity_attempt", TopicID: "sequencing", ResourceType: "activity", ResourceID: activities[0].ID, TimeSpentSeconds: 600, Succeeded: &succeeded},
	}
	for i := range events {
		t := time.Now().Add(time.Duration(-i) * time.Hour)
		events[i].OccurredAt = &t
	}
	if _, err := s.Analytics.LogEvents(ctx, avery.ID, events, "", "seed"); err != nil {
		return err
	}

	logger.Log.Info("demo data seeded",
		zap.Int("students", len(students)),
		zap.Int("activities", len(activities)))
	return nil
}
