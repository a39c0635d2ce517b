package repository

import (
	"errors"

	"learning_pulse_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// FindByStudentID loads the full aggregate with every association, creating
// an empty record on first access.
func (r *ProgressRepository) FindByStudentID(studentID uint) (*model.StudentProgress, error) {
	var p model.StudentProgress
	err := r.DB.Preload("CompletedActivities").
		Preload("AssessmentResults").
		Preload("EnrolledPaths").
		Preload("Badges").
		Preload("LearningGoals", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("student_id = ?", studentID).
		First(&p).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = model.StudentProgress{
			StudentID:         studentID,
			CurrentSkillLevel: model.SkillBeginner,
		}
		if err := r.DB.Create(&p).Error; err != nil {
			return nil, err
		}
		return &p, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Save persists the aggregate and its associations in one transaction.
func (r *ProgressRepository) Save(p *model.StudentProgress) error {
	return r.DB.Session(&gorm.Session{FullSaveAssociations: true}).Save(p).Error
}

func (r *ProgressRepository) Delete(studentID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var p model.StudentProgress
		err := tx.Where("student_id = ?", studentID).First(&p).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		for _, child := range []interface{}{
			&model.CompletedActivity{},
			&model.AssessmentResult{},
			&model.PathEnrollment{},
			&model.Badge{},
			&model.LearningGoal{},
		} {
			if err := tx.Where("progress_id = ?", p.ID).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&p).Error
	})
}

func (r *ProgressRepository) FindTopByPoints(limit int) ([]model.StudentProgress, error) {
	var rows []model.StudentProgress
	err := r.DB.Order("total_points DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *ProgressRepository) CountBySkillLevel() (map[model.SkillLevel]int64, error) {
	type row struct {
		CurrentSkillLevel model.SkillLevel
		N                 int64
	}
	var rows []row
	err := r.DB.Model(&model.StudentProgress{}).
		Select("current_skill_level, COUNT(*) AS n").
		Group("current_skill_level").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[model.SkillLevel]int64, len(rows))
	for _, r := range rows {
		out[r.CurrentSkillLevel] = r.N
	}
	return out, nil
}

func (r *ProgressRepository) CreateGoal(goal *model.LearningGoal) error {
	return r.DB.Create(goal).Error
}

func (r *ProgressRepository) FindGoalByUUID(progressID uint, goalID string) (*model.LearningGoal, error) {
	var goal model.LearningGoal
	err := r.DB.Where("progress_id = ? AND id = ?", progressID, goalID).First(&goal).Error
	return &goal, err
}

func (r *ProgressRepository) UpdateGoal(goal *model.LearningGoal) error {
	return r.DB.Save(goal).Error
}

func (r *ProgressRepository) DeleteGoal(progressID uint, goalID string) error {
	return r.DB.Where("progress_id = ? AND id = ?", progressID, goalID).
		Delete(&model.LearningGoal{}).Error
}
