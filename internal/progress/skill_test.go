package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learning_pulse_backend/internal/model"
)

func TestSkillClassifierClassify(t *testing.T) {
	c := NewSkillClassifier(DefaultConfig())

	tests := []struct {
		points int
		want   model.SkillLevel
	}{
		{0, model.SkillBeginner},
		{499, model.SkillBeginner},
		{500, model.SkillIntermediate},
		{1499, model.SkillIntermediate},
		{1500, model.SkillAdvanced},
		{2999, model.SkillAdvanced},
		{3000, model.SkillExpert},
		{100000, model.SkillExpert},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Classify(tt.points), "points=%d", tt.points)
	}
}

func TestSkillClassifierApplyAwardsOneBadge(t *testing.T) {
	c := NewSkillClassifier(DefaultConfig())
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	p := &model.StudentProgress{
		StudentID:         7,
		TotalPoints:       550,
		CurrentSkillLevel: model.SkillBeginner,
	}

	badge := c.Apply(p, now)
	require.NotNil(t, badge)
	assert.Equal(t, model.SkillIntermediate, p.CurrentSkillLevel)
	assert.Equal(t, "Intermediate Level", badge.Name)
	assert.Equal(t, now, badge.EarnedOn)
	require.Len(t, p.Badges, 1)

	// Redundant invocation in the same logical transaction must not
	// append a second badge.
	assert.Nil(t, c.Apply(p, now))
	assert.Nil(t, c.Apply(p, now.Add(time.Minute)))
	assert.Len(t, p.Badges, 1)
}

func TestSkillClassifierApplyUnchangedLevel(t *testing.T) {
	c := NewSkillClassifier(DefaultConfig())

	p := &model.StudentProgress{
		TotalPoints:       100,
		CurrentSkillLevel: model.SkillBeginner,
	}

	assert.Nil(t, c.Apply(p, time.Now()))
	assert.Empty(t, p.Badges)
}

func TestSkillClassifierCustomThresholds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Skill = SkillThresholds{Intermediate: 10, Advanced: 20, Expert: 30}
	c := NewSkillClassifier(cfg)

	assert.Equal(t, model.SkillBeginner, c.Classify(9))
	assert.Equal(t, model.SkillIntermediate, c.Classify(10))
	assert.Equal(t, model.SkillExpert, c.Classify(30))
}
