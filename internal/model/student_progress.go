package model

import (
	"time"
)

type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
)

type EnrollmentStatus string

const (
	EnrollmentNotStarted EnrollmentStatus = "not-started"
	EnrollmentInProgress EnrollmentStatus = "in-progress"
	EnrollmentCompleted  EnrollmentStatus = "completed"
)

// StudentProgress is the per-student aggregate. One row per student,
// created lazily on first write and never hard-deleted here.
// swagger:model StudentProgress
type StudentProgress struct {
	BaseModel
	StudentID         uint       `gorm:"uniqueIndex;type:bigint unsigned;not null" json:"studentId"`
	TotalPoints       int        `gorm:"default:0" json:"totalPoints"`
	CurrentSkillLevel SkillLevel `gorm:"type:enum('beginner','intermediate','advanced','expert');default:'beginner'" json:"currentSkillLevel"`

	// Streak state, day granularity (UTC calendar days).
	CurrentStreak    int        `gorm:"default:0" json:"currentStreak"`
	LongestStreak    int        `gorm:"default:0" json:"longestStreak"`
	LastActivityDate *time.Time `json:"lastActivityDate"`

	LastActive time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastActive"`

	// Derived analytics, recomputed out of the completion write path.
	Strengths              []string `gorm:"serializer:json;type:json" json:"strengths"`
	StrugglingTopics       []string `gorm:"serializer:json;type:json" json:"strugglingTopics"`
	LearningPace           string   `gorm:"size:20;default:'steady'" json:"learningPace"`
	PreferredActivityTypes []string `gorm:"serializer:json;type:json" json:"preferredActivityTypes"`

	CompletedActivities []CompletedActivity `gorm:"foreignKey:ProgressID" json:"completedActivities,omitempty"`
	AssessmentResults   []AssessmentResult  `gorm:"foreignKey:ProgressID" json:"assessmentResults,omitempty"`
	EnrolledPaths       []PathEnrollment    `gorm:"foreignKey:ProgressID" json:"enrolledPaths,omitempty"`
	Badges              []Badge             `gorm:"foreignKey:ProgressID" json:"badges,omitempty"`
	LearningGoals       []LearningGoal      `gorm:"foreignKey:ProgressID" json:"learningGoals,omitempty"`
}

func (StudentProgress) TableName() string {
	return "student_progress"
}

// CompletedActivity records one activity completion; at most one row per
// (progress, activity), re-completion updates in place.
// swagger:model CompletedActivity
type CompletedActivity struct {
	BaseModel
	ProgressID       uint      `gorm:"index:idx_progress_activity,unique;type:bigint unsigned;not null" json:"-"`
	ActivityID       uint      `gorm:"index:idx_progress_activity,unique;type:bigint unsigned;not null" json:"activityId"`
	CompletedAt      time.Time `gorm:"not null" json:"completedAt"`
	Score            *int      `json:"score,omitempty"`
	TimeSpentMinutes int       `gorm:"default:0" json:"timeSpentMinutes"`
	Attempts         int       `gorm:"default:1" json:"attempts"`
	HintsUsed        int       `gorm:"default:0" json:"hintsUsed"`
}

func (CompletedActivity) TableName() string {
	return "completed_activities"
}

// swagger:model AssessmentResult
type AssessmentResult struct {
	BaseModel
	ProgressID       uint      `gorm:"index:idx_progress_assessment,unique;type:bigint unsigned;not null" json:"-"`
	AssessmentID     uint      `gorm:"index:idx_progress_assessment,unique;type:bigint unsigned;not null" json:"assessmentId"`
	CompletedAt      time.Time `gorm:"not null" json:"completedAt"`
	Score            int       `gorm:"default:0" json:"score"`
	TimeSpentMinutes int       `gorm:"default:0" json:"timeSpentMinutes"`
	Responses        []string  `gorm:"serializer:json;type:json" json:"responses"`
}

func (AssessmentResult) TableName() string {
	return "assessment_results"
}

// swagger:model PathEnrollment
type PathEnrollment struct {
	BaseModel
	ProgressID     uint             `gorm:"index:idx_progress_path,unique;type:bigint unsigned;not null" json:"-"`
	PathID         uint             `gorm:"index:idx_progress_path,unique;type:bigint unsigned;not null" json:"pathId"`
	Status         EnrollmentStatus `gorm:"type:enum('not-started','in-progress','completed');default:'not-started'" json:"status"`
	CompletedNodes []uint           `gorm:"serializer:json;type:json" json:"completedNodes"`
	EnrolledAt     time.Time        `gorm:"not null" json:"enrolledAt"`
	LastActivityAt *time.Time       `json:"lastActivityAt"`
}

func (PathEnrollment) TableName() string {
	return "path_enrollments"
}

// Badge rows are append-only.
// swagger:model Badge
type Badge struct {
	BaseModel
	ProgressID  uint      `gorm:"index;type:bigint unsigned;not null" json:"-"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	EarnedOn    time.Time `gorm:"not null" json:"earnedOn"`
}

func (Badge) TableName() string {
	return "badges"
}

// LearningGoal is addressed by its generated UUID, never by list position;
// SortOrder only drives display ordering.
// swagger:model LearningGoal
type LearningGoal struct {
	UUIDBase
	ProgressID  uint      `gorm:"index;type:bigint unsigned;not null" json:"-"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	TargetDate  time.Time `gorm:"type:datetime" json:"targetDate"`
	IsCompleted bool      `gorm:"default:false" json:"isCompleted"`
	Progress    int       `gorm:"default:0" json:"progress"` // 0-100
	SortOrder   int       `gorm:"default:0" json:"sortOrder"`
}

func (LearningGoal) TableName() string {
	return "learning_goals"
}
