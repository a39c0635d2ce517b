package progress

import (
	"fmt"
	"time"

	"learning_pulse_backend/internal/model"
)

// CompletionInput carries the caller-supplied fields of a completion.
// TimeSpentMinutes is a pointer so a missing value can be told apart from
// zero; missing or negative is rejected.
type CompletionInput struct {
	Score            *int
	TimeSpentMinutes *int
	HintsUsed        int
}

// AssessmentInput carries one assessment submission.
type AssessmentInput struct {
	Score            int
	TimeSpentMinutes *int
	Responses        []string
}

// Recorder applies completions to a student progress aggregate in memory.
// The caller owns persistence; the recorder assumes a freshly-read
// aggregate and hands back a fully-updated one for a single atomic save.
type Recorder struct {
	classifier *SkillClassifier
}

func NewRecorder(cfg Config) *Recorder {
	return &Recorder{classifier: NewSkillClassifier(cfg)}
}

// RecordCompletion upserts one activity completion.
//
// First-time completions append a record, award the catalog points, advance
// the streak and reclassify the skill level. Repeat completions merge the
// supplied fields into the stored record and bump Attempts by one, without
// re-awarding points or touching the streak; the classifier still runs so
// the aggregate is internally consistent regardless of call order.
//
// The returned bool reports whether this was a first-time completion.
func (r *Recorder) RecordCompletion(p *model.StudentProgress, activityID uint, in CompletionInput, entry *CatalogEntry, now time.Time) (bool, error) {
	if entry == nil || entry.Kind != KindActivity || entry.ID != activityID {
		return false, fmt.Errorf("activity %d: %w", activityID, ErrNotFound)
	}
	if in.TimeSpentMinutes == nil || *in.TimeSpentMinutes < 0 {
		return false, fmt.Errorf("timeSpentMinutes: %w", ErrInvalidInput)
	}

	existing := findCompletion(p, activityID)
	first := existing == nil

	if first {
		p.CompletedActivities = append(p.CompletedActivities, model.CompletedActivity{
			ProgressID:       p.ID,
			ActivityID:       activityID,
			CompletedAt:      now,
			Score:            in.Score,
			TimeSpentMinutes: *in.TimeSpentMinutes,
			Attempts:         1,
			HintsUsed:        in.HintsUsed,
		})
		p.TotalPoints += entry.Points
		RecordStreakActivity(p, now)
	} else {
		existing.CompletedAt = now
		existing.TimeSpentMinutes = *in.TimeSpentMinutes
		existing.Attempts++
		existing.HintsUsed = in.HintsUsed
		if in.Score != nil {
			existing.Score = in.Score
		}
	}

	r.classifier.Apply(p, now)
	p.LastActive = now
	return first, nil
}

// RecordAssessment upserts one assessment result. Points are awarded on
// the first submission only; later submissions overwrite score, time and
// date. Assessments do not feed the streak.
func (r *Recorder) RecordAssessment(p *model.StudentProgress, assessmentID uint, in AssessmentInput, entry *CatalogEntry, now time.Time) (bool, error) {
	if entry == nil || entry.Kind != KindAssessment || entry.ID != assessmentID {
		return false, fmt.Errorf("assessment %d: %w", assessmentID, ErrNotFound)
	}
	if in.TimeSpentMinutes == nil || *in.TimeSpentMinutes < 0 {
		return false, fmt.Errorf("timeSpentMinutes: %w", ErrInvalidInput)
	}

	var existing *model.AssessmentResult
	for i := range p.AssessmentResults {
		if p.AssessmentResults[i].AssessmentID == assessmentID {
			existing = &p.AssessmentResults[i]
			break
		}
	}
	first := existing == nil

	if first {
		p.AssessmentResults = append(p.AssessmentResults, model.AssessmentResult{
			ProgressID:       p.ID,
			AssessmentID:     assessmentID,
			CompletedAt:      now,
			Score:            in.Score,
			TimeSpentMinutes: *in.TimeSpentMinutes,
			Responses:        in.Responses,
		})
		p.TotalPoints += entry.Points
	} else {
		existing.CompletedAt = now
		existing.Score = in.Score
		existing.TimeSpentMinutes = *in.TimeSpentMinutes
		existing.Responses = in.Responses
	}

	r.classifier.Apply(p, now)
	p.LastActive = now
	return first, nil
}

// Enroll adds a path enrollment; enrolling twice in the same path is a
// conflict.
func Enroll(p *model.StudentProgress, entry *CatalogEntry, pathID uint, now time.Time) error {
	if entry == nil || entry.Kind != KindPath || entry.ID != pathID {
		return fmt.Errorf("learning path %d: %w", pathID, ErrNotFound)
	}
	for i := range p.EnrolledPaths {
		if p.EnrolledPaths[i].PathID == pathID {
			return fmt.Errorf("already enrolled in path %d: %w", pathID, ErrConflict)
		}
	}
	p.EnrolledPaths = append(p.EnrolledPaths, model.PathEnrollment{
		ProgressID: p.ID,
		PathID:     pathID,
		Status:     model.EnrollmentNotStarted,
		EnrolledAt: now,
	})
	return nil
}

// CompleteNode marks one path node done, moving the enrollment through
// not-started -> in-progress -> completed as nodes finish.
func CompleteNode(p *model.StudentProgress, pathID, nodeID uint, totalNodes int, now time.Time) error {
	var enrollment *model.PathEnrollment
	for i := range p.EnrolledPaths {
		if p.EnrolledPaths[i].PathID == pathID {
			enrollment = &p.EnrolledPaths[i]
			break
		}
	}
	if enrollment == nil {
		return fmt.Errorf("enrollment for path %d: %w", pathID, ErrNotFound)
	}

	for _, done := range enrollment.CompletedNodes {
		if done == nodeID {
			t := now
			enrollment.LastActivityAt = &t
			return nil // idempotent
		}
	}

	enrollment.CompletedNodes = append(enrollment.CompletedNodes, nodeID)
	t := now
	enrollment.LastActivityAt = &t
	if totalNodes > 0 && len(enrollment.CompletedNodes) >= totalNodes {
		enrollment.Status = model.EnrollmentCompleted
	} else {
		enrollment.Status = model.EnrollmentInProgress
	}
	return nil
}

func findCompletion(p *model.StudentProgress, activityID uint) *model.CompletedActivity {
	for i := range p.CompletedActivities {
		if p.CompletedActivities[i].ActivityID == activityID {
			return &p.CompletedActivities[i]
		}
	}
	return nil
}
