package progress

import (
	"fmt"
	"time"

	"learning_pulse_backend/internal/model"
)

// SkillClassifier maps cumulative points onto the four skill tiers.
type SkillClassifier struct {
	thresholds SkillThresholds
}

func NewSkillClassifier(cfg Config) *SkillClassifier {
	return &SkillClassifier{thresholds: cfg.Skill}
}

// Classify is pure: beginner [0,intermediate), intermediate
// [intermediate,advanced), advanced [advanced,expert), expert [expert,∞).
func (c *SkillClassifier) Classify(totalPoints int) model.SkillLevel {
	switch {
	case totalPoints >= c.thresholds.Expert:
		return model.SkillExpert
	case totalPoints >= c.thresholds.Advanced:
		return model.SkillAdvanced
	case totalPoints >= c.thresholds.Intermediate:
		return model.SkillIntermediate
	default:
		return model.SkillBeginner
	}
}

// Apply recomputes the skill level from the aggregate's current points.
// When the tier changes it mutates CurrentSkillLevel and appends exactly
// one badge for the new tier; redundant calls within the same transaction
// are no-ops because the compare happens before the mutate.
func (c *SkillClassifier) Apply(p *model.StudentProgress, now time.Time) *model.Badge {
	newLevel := c.Classify(p.TotalPoints)
	if newLevel == p.CurrentSkillLevel {
		return nil
	}

	p.CurrentSkillLevel = newLevel
	badge := model.Badge{
		ProgressID:  p.ID,
		Name:        badgeName(newLevel),
		Description: fmt.Sprintf("Reached the %s skill level", newLevel),
		EarnedOn:    now,
	}
	p.Badges = append(p.Badges, badge)
	return &p.Badges[len(p.Badges)-1]
}

func badgeName(level model.SkillLevel) string {
	switch level {
	case model.SkillIntermediate:
		return "Intermediate Level"
	case model.SkillAdvanced:
		return "Advanced Level"
	case model.SkillExpert:
		return "Expert Level"
	default:
		return "Beginner Level"
	}
}
