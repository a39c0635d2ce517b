package repository

import (
	"errors"

	"learning_pulse_backend/internal/model"

	"gorm.io/gorm"
)

type ConsentRepository struct {
	DB *gorm.DB
}

func NewConsentRepository(db *gorm.DB) *ConsentRepository {
	return &ConsentRepository{DB: db}
}

// FindByStudentID returns the stored record, or a default deny-all record
// when the student has never set consent.
func (r *ConsentRepository) FindByStudentID(studentID uint) (*model.ConsentRecord, error) {
	var rec model.ConsentRecord
	err := r.DB.Where("student_id = ?", studentID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.ConsentRecord{StudentID: studentID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *ConsentRepository) Upsert(rec *model.ConsentRecord) error {
	var existing model.ConsentRecord
	err := r.DB.Where("student_id = ?", rec.StudentID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.DB.Create(rec).Error
	}
	if err != nil {
		return err
	}

	existing.AllowAnalytics = rec.AllowAnalytics
	existing.AllowPersonalization = rec.AllowPersonalization
	if err := r.DB.Save(&existing).Error; err != nil {
		return err
	}
	*rec = existing
	return nil
}

func (r *ConsentRepository) Delete(studentID uint) error {
	return r.DB.Unscoped().
		Where("student_id = ?", studentID).
		Delete(&model.ConsentRecord{}).Error
}
