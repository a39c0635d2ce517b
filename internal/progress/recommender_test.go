package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learning_pulse_backend/internal/model"
)

// catalog order is most-recent-created-first, as served by the repositories.
func testCatalog() []CatalogEntry {
	return []CatalogEntry{
		{Kind: KindActivity, ID: 10, Title: "Debug a maze game", Topic: "debugging", ActivityType: model.ActivityGame, DifficultyLevel: model.SkillBeginner, Points: 50, IsPublished: true},
		{Kind: KindActivity, ID: 9, Title: "Loop drills", Topic: "loops", ActivityType: model.ActivityExercise, LearningObjectives: []string{"use loops to repeat steps"}, DifficultyLevel: model.SkillBeginner, Points: 40, IsPublished: true},
		{Kind: KindActivity, ID: 8, Title: "Variables warmup", Topic: "variables", ActivityType: model.ActivityExercise, DifficultyLevel: model.SkillBeginner, Points: 30, IsPublished: true},
		{Kind: KindActivity, ID: 7, Title: "Unpublished draft", Topic: "loops", ActivityType: model.ActivityExercise, DifficultyLevel: model.SkillBeginner, Points: 10, IsPublished: false},
		{Kind: KindActivity, ID: 6, Title: "Recursion deep dive", Topic: "recursion", ActivityType: model.ActivityProject, DifficultyLevel: model.SkillAdvanced, Points: 200, IsPublished: true},
		{Kind: KindPath, ID: 5, Title: "Beginner path", Topic: "basics", DifficultyLevel: model.SkillBeginner, IsPublished: true},
		{Kind: KindPath, ID: 4, Title: "Another beginner path", Topic: "basics", DifficultyLevel: model.SkillBeginner, IsPublished: true},
	}
}

func TestRecommendColdStart(t *testing.T) {
	r := NewRecommender(DefaultConfig())

	got := r.Recommend(nil, testCatalog(), KindActivity, 5)

	require.NotEmpty(t, got)
	for _, e := range got {
		assert.Equal(t, model.SkillBeginner, e.DifficultyLevel)
		assert.True(t, e.IsPublished)
		assert.Equal(t, KindActivity, e.Kind)
	}
}

func TestRecommendExcludesCompletedAndUnpublished(t *testing.T) {
	r := NewRecommender(DefaultConfig())
	p := &model.StudentProgress{
		CurrentSkillLevel: model.SkillBeginner,
		CompletedActivities: []model.CompletedActivity{
			{ActivityID: 10},
		},
	}

	got := r.Recommend(p, testCatalog(), KindActivity, 5)

	ids := make([]uint, 0, len(got))
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	assert.NotContains(t, ids, uint(10), "completed activity must not come back")
	assert.NotContains(t, ids, uint(7), "unpublished activity must not come back")
	assert.NotContains(t, ids, uint(6), "tier mismatch must not come back")
}

func TestRecommendExcludesEnrolledPaths(t *testing.T) {
	r := NewRecommender(DefaultConfig())
	p := &model.StudentProgress{
		CurrentSkillLevel: model.SkillBeginner,
		EnrolledPaths:     []model.PathEnrollment{{PathID: 5}},
	}

	got := r.Recommend(p, testCatalog(), KindPath, 5)

	require.Len(t, got, 1)
	assert.Equal(t, uint(4), got[0].ID)
}

func TestRecommendHonorsLimit(t *testing.T) {
	r := NewRecommender(DefaultConfig())

	got := r.Recommend(nil, testCatalog(), KindActivity, 2)
	assert.Len(t, got, 2)

	// Non-positive limit falls back to the configured default.
	got = r.Recommend(nil, testCatalog(), KindActivity, 0)
	assert.LessOrEqual(t, len(got), 5)
}

func TestRecommendStrugglingTopicsRankFirst(t *testing.T) {
	r := NewRecommender(DefaultConfig())
	p := &model.StudentProgress{
		CurrentSkillLevel: model.SkillBeginner,
		StrugglingTopics:  []string{"loops"},
	}

	got := r.Recommend(p, testCatalog(), KindActivity, 5)

	require.NotEmpty(t, got)
	assert.Equal(t, "loops", got[0].Topic, "struggling topic content first")
	// Remaining entries keep catalog order.
	require.Len(t, got, 3)
	assert.Equal(t, uint(10), got[1].ID)
	assert.Equal(t, uint(8), got[2].ID)
}

func TestRecommendPreferredTypesNarrow(t *testing.T) {
	r := NewRecommender(DefaultConfig())
	p := &model.StudentProgress{
		CurrentSkillLevel:      model.SkillBeginner,
		PreferredActivityTypes: []string{"game"},
	}

	got := r.Recommend(p, testCatalog(), KindActivity, 5)

	require.Len(t, got, 1)
	assert.Equal(t, uint(10), got[0].ID)
}

func TestRecommendPreferredTypesNeverEmpty(t *testing.T) {
	r := NewRecommender(DefaultConfig())
	p := &model.StudentProgress{
		CurrentSkillLevel:      model.SkillBeginner,
		PreferredActivityTypes: []string{"reading"}, // no beginner reading in the catalog
	}

	got := r.Recommend(p, testCatalog(), KindActivity, 5)

	assert.NotEmpty(t, got, "narrowing must fall back instead of emptying the set")
}

func TestRecommendDeterministic(t *testing.T) {
	r := NewRecommender(DefaultConfig())
	p := &model.StudentProgress{
		CurrentSkillLevel: model.SkillBeginner,
		StrugglingTopics:  []string{"loops", "debugging"},
	}

	first := r.Recommend(p, testCatalog(), KindActivity, 5)
	second := r.Recommend(p, testCatalog(), KindActivity, 5)

	assert.Equal(t, first, second)
}
