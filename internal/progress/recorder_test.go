package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learning_pulse_backend/internal/model"
)

func intp(v int) *int { return &v }

func activityEntry(id uint, points int) *CatalogEntry {
	return &CatalogEntry{
		Kind:            KindActivity,
		ID:              id,
		Title:           "Loops in Scratch",
		Topic:           "loops",
		DifficultyLevel: model.SkillBeginner,
		Points:          points,
		IsPublished:     true,
	}
}

func TestRecordCompletionFirstTime(t *testing.T) {
	r := NewRecorder(DefaultConfig())
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	p := &model.StudentProgress{StudentID: 1, CurrentSkillLevel: model.SkillBeginner}

	first, err := r.RecordCompletion(p, 42, CompletionInput{
		Score:            intp(90),
		TimeSpentMinutes: intp(12),
		HintsUsed:        1,
	}, activityEntry(42, 100), now)

	require.NoError(t, err)
	assert.True(t, first)
	assert.Equal(t, 100, p.TotalPoints)
	assert.Equal(t, 1, p.CurrentStreak)
	assert.Equal(t, now, p.LastActive)
	require.Len(t, p.CompletedActivities, 1)
	got := p.CompletedActivities[0]
	assert.Equal(t, uint(42), got.ActivityID)
	assert.Equal(t, 1, got.Attempts)
	assert.Equal(t, 12, got.TimeSpentMinutes)
	require.NotNil(t, got.Score)
	assert.Equal(t, 90, *got.Score)
}

func TestRecordCompletionRepeatDoesNotReaward(t *testing.T) {
	r := NewRecorder(DefaultConfig())
	base := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	p := &model.StudentProgress{StudentID: 1, CurrentSkillLevel: model.SkillBeginner}
	entry := activityEntry(42, 100)

	_, err := r.RecordCompletion(p, 42, CompletionInput{TimeSpentMinutes: intp(10)}, entry, base)
	require.NoError(t, err)
	first, err := r.RecordCompletion(p, 42, CompletionInput{TimeSpentMinutes: intp(15)}, entry, base.Add(2*time.Hour))
	require.NoError(t, err)

	assert.False(t, first)
	assert.Equal(t, 100, p.TotalPoints, "points awarded once only")
	require.Len(t, p.CompletedActivities, 1)
	assert.Equal(t, 2, p.CompletedActivities[0].Attempts)
	assert.Equal(t, 15, p.CompletedActivities[0].TimeSpentMinutes)
	assert.Equal(t, 1, p.CurrentStreak, "repeat completion leaves the streak alone")
}

func TestRecordCompletionSkillTransition(t *testing.T) {
	r := NewRecorder(DefaultConfig())
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	p := &model.StudentProgress{StudentID: 1, CurrentSkillLevel: model.SkillBeginner}

	_, err := r.RecordCompletion(p, 7, CompletionInput{TimeSpentMinutes: intp(30)}, activityEntry(7, 550), now)

	require.NoError(t, err)
	assert.Equal(t, 550, p.TotalPoints)
	assert.Equal(t, model.SkillIntermediate, p.CurrentSkillLevel)
	require.Len(t, p.Badges, 1)
	assert.Equal(t, "Intermediate Level", p.Badges[0].Name)
}

func TestRecordCompletionErrors(t *testing.T) {
	r := NewRecorder(DefaultConfig())
	now := time.Now()

	tests := []struct {
		name    string
		ref     uint
		in      CompletionInput
		entry   *CatalogEntry
		wantErr error
	}{
		{"missing catalog entry", 42, CompletionInput{TimeSpentMinutes: intp(5)}, nil, ErrNotFound},
		{"mismatched entry", 42, CompletionInput{TimeSpentMinutes: intp(5)}, activityEntry(43, 10), ErrNotFound},
		{"wrong kind", 42, CompletionInput{TimeSpentMinutes: intp(5)}, &CatalogEntry{Kind: KindAssessment, ID: 42}, ErrNotFound},
		{"missing time spent", 42, CompletionInput{}, activityEntry(42, 10), ErrInvalidInput},
		{"negative time spent", 42, CompletionInput{TimeSpentMinutes: intp(-1)}, activityEntry(42, 10), ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &model.StudentProgress{StudentID: 1, CurrentSkillLevel: model.SkillBeginner}
			_, err := r.RecordCompletion(p, tt.ref, tt.in, tt.entry, now)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, p.CompletedActivities)
			assert.Zero(t, p.TotalPoints)
		})
	}
}

func TestRecordAssessmentOverwrites(t *testing.T) {
	r := NewRecorder(DefaultConfig())
	base := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	p := &model.StudentProgress{StudentID: 1, CurrentSkillLevel: model.SkillBeginner}
	entry := &CatalogEntry{Kind: KindAssessment, ID: 9, Points: 50, IsPublished: true, DifficultyLevel: model.SkillBeginner}

	first, err := r.RecordAssessment(p, 9, AssessmentInput{Score: 70, TimeSpentMinutes: intp(20)}, entry, base)
	require.NoError(t, err)
	assert.True(t, first)

	first, err = r.RecordAssessment(p, 9, AssessmentInput{Score: 95, TimeSpentMinutes: intp(14)}, entry, base.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.False(t, first)

	assert.Equal(t, 50, p.TotalPoints, "assessment points awarded once")
	require.Len(t, p.AssessmentResults, 1)
	assert.Equal(t, 95, p.AssessmentResults[0].Score)
	assert.Equal(t, 14, p.AssessmentResults[0].TimeSpentMinutes)
	assert.Equal(t, 0, p.CurrentStreak, "assessments do not feed the streak")
}

func TestEnrollDuplicateIsConflict(t *testing.T) {
	now := time.Now()
	p := &model.StudentProgress{StudentID: 1}
	entry := &CatalogEntry{Kind: KindPath, ID: 3, IsPublished: true, DifficultyLevel: model.SkillBeginner}

	require.NoError(t, Enroll(p, entry, 3, now))
	err := Enroll(p, entry, 3, now)

	assert.ErrorIs(t, err, ErrConflict)
	assert.Len(t, p.EnrolledPaths, 1)
}

func TestCompleteNodeLifecycle(t *testing.T) {
	now := time.Now()
	p := &model.StudentProgress{StudentID: 1}
	entry := &CatalogEntry{Kind: KindPath, ID: 3, IsPublished: true, DifficultyLevel: model.SkillBeginner}
	require.NoError(t, Enroll(p, entry, 3, now))

	require.NoError(t, CompleteNode(p, 3, 101, 2, now))
	assert.Equal(t, model.EnrollmentInProgress, p.EnrolledPaths[0].Status)

	// Completing the same node twice is idempotent.
	require.NoError(t, CompleteNode(p, 3, 101, 2, now))
	assert.Len(t, p.EnrolledPaths[0].CompletedNodes, 1)

	require.NoError(t, CompleteNode(p, 3, 102, 2, now))
	assert.Equal(t, model.EnrollmentCompleted, p.EnrolledPaths[0].Status)

	err := CompleteNode(p, 99, 1, 2, now)
	assert.ErrorIs(t, err, ErrNotFound)
}
