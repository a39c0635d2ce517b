package progress

import (
	"sort"
	"strings"

	"learning_pulse_backend/internal/model"
)

// Recommender filters and re-ranks catalog entries for one student.
// It is deterministic: identical inputs always yield identical output.
type Recommender struct {
	defaultLimit int
}

func NewRecommender(cfg Config) *Recommender {
	limit := cfg.RecommendLimit
	if limit <= 0 {
		limit = 5
	}
	return &Recommender{defaultLimit: limit}
}

// Recommend picks up to limit entries of the given kind.
//
// Candidates are published entries matching the student's skill tier that
// the student has not completed (activities) or enrolled in (paths). A
// student without an aggregate gets the beginner cold-start set. Preferred
// activity types narrow the set only when the narrowing leaves something;
// entries touching a struggling topic are stably ranked first, everything
// else keeps catalog order (most-recent-created-first).
func (r *Recommender) Recommend(p *model.StudentProgress, catalog []CatalogEntry, kind EntryKind, limit int) []CatalogEntry {
	if limit <= 0 {
		limit = r.defaultLimit
	}

	tier := model.SkillBeginner
	if p != nil {
		tier = p.CurrentSkillLevel
	}

	candidates := make([]CatalogEntry, 0, len(catalog))
	for _, e := range catalog {
		if e.Kind != kind || !e.IsPublished || e.DifficultyLevel != tier {
			continue
		}
		if p != nil && alreadyHas(p, e) {
			continue
		}
		candidates = append(candidates, e)
	}

	if p != nil && kind == KindActivity && len(p.PreferredActivityTypes) > 0 {
		narrowed := make([]CatalogEntry, 0, len(candidates))
		for _, e := range candidates {
			if matchesType(e, p.PreferredActivityTypes) {
				narrowed = append(narrowed, e)
			}
		}
		// Never narrow to nothing.
		if len(narrowed) > 0 {
			candidates = narrowed
		}
	}

	if p != nil && len(p.StrugglingTopics) > 0 {
		struggling := p.StrugglingTopics
		sort.SliceStable(candidates, func(i, j int) bool {
			return addressesStruggle(candidates[i], struggling) && !addressesStruggle(candidates[j], struggling)
		})
	}

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

func alreadyHas(p *model.StudentProgress, e CatalogEntry) bool {
	switch e.Kind {
	case KindActivity:
		for i := range p.CompletedActivities {
			if p.CompletedActivities[i].ActivityID == e.ID {
				return true
			}
		}
	case KindAssessment:
		for i := range p.AssessmentResults {
			if p.AssessmentResults[i].AssessmentID == e.ID {
				return true
			}
		}
	case KindPath:
		for i := range p.EnrolledPaths {
			if p.EnrolledPaths[i].PathID == e.ID {
				return true
			}
		}
	}
	return false
}

func matchesType(e CatalogEntry, preferred []string) bool {
	for _, t := range preferred {
		if strings.EqualFold(string(e.ActivityType), t) {
			return true
		}
	}
	return false
}

// addressesStruggle reports whether the entry's topic or any learning
// objective overlaps a struggling-topic label.
func addressesStruggle(e CatalogEntry, struggling []string) bool {
	for _, topic := range struggling {
		if topic == "" {
			continue
		}
		if strings.EqualFold(e.Topic, topic) {
			return true
		}
		lower := strings.ToLower(topic)
		for _, obj := range e.LearningObjectives {
			if strings.Contains(strings.ToLower(obj), lower) {
				return true
			}
		}
	}
	return false
}
