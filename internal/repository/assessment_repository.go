package repository

import (
	"learning_pulse_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) Create(assessment *model.Assessment) error {
	return r.DB.Create(assessment).Error
}

func (r *AssessmentRepository) FindByID(id uint) (*model.Assessment, error) {
	var assessment model.Assessment
	err := r.DB.First(&assessment, id).Error
	return &assessment, err
}

func (r *AssessmentRepository) List(topic string, publishedOnly bool, page, limit int) ([]model.Assessment, int64, error) {
	var assessments []model.Assessment
	var total int64

	query := r.DB.Model(&model.Assessment{})
	if topic != "" {
		query = query.Where("topic = ?", topic)
	}
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&assessments).Error
	return assessments, total, err
}

func (r *AssessmentRepository) FindAllPublished() ([]model.Assessment, error) {
	var assessments []model.Assessment
	err := r.DB.Where("is_published = ?", true).
		Order("created_at DESC").
		Find(&assessments).Error
	return assessments, err
}

func (r *AssessmentRepository) Update(assessment *model.Assessment) error {
	return r.DB.Save(assessment).Error
}

func (r *AssessmentRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Assessment{}, id).Error
}
