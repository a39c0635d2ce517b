package progress

import (
	"learning_pulse_backend/internal/model"
)

// EntryKind discriminates the catalog variants this core consumes.
type EntryKind string

const (
	KindActivity   EntryKind = "activity"
	KindAssessment EntryKind = "assessment"
	KindPath       EntryKind = "path"
)

// CatalogEntry is the tagged view of one learnable content record. Raw
// rows are resolved into this shape once, at the service boundary, so the
// core never branches on loosely-typed documents.
type CatalogEntry struct {
	Kind               EntryKind
	ID                 uint
	Title              string
	Topic              string
	ActivityType       model.ActivityType // set for KindActivity only
	LearningObjectives []string
	DifficultyLevel    model.SkillLevel
	Points             int
	IsPublished        bool
}

// ActivityEntry builds the catalog view of an activity row.
func ActivityEntry(a *model.Activity) CatalogEntry {
	return CatalogEntry{
		Kind:               KindActivity,
		ID:                 a.ID,
		Title:              a.Title,
		Topic:              a.Topic,
		ActivityType:       a.Type,
		LearningObjectives: a.LearningObjectives,
		DifficultyLevel:    a.DifficultyLevel,
		Points:             a.Points,
		IsPublished:        a.IsPublished,
	}
}

// AssessmentEntry builds the catalog view of an assessment row.
func AssessmentEntry(a *model.Assessment) CatalogEntry {
	return CatalogEntry{
		Kind:            KindAssessment,
		ID:              a.ID,
		Title:           a.Title,
		Topic:           a.Topic,
		DifficultyLevel: a.DifficultyLevel,
		Points:          a.Points,
		IsPublished:     a.IsPublished,
	}
}

// PathEntry builds the catalog view of a learning-path row.
func PathEntry(p *model.LearningPath) CatalogEntry {
	return CatalogEntry{
		Kind:            KindPath,
		ID:              p.ID,
		Title:           p.Title,
		Topic:           p.Topic,
		DifficultyLevel: p.RequiredSkillLevel,
		IsPublished:     p.IsPublished,
	}
}
