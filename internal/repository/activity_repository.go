package repository

import (
	"learning_pulse_backend/internal/model"

	"gorm.io/gorm"
)

type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

func (r *ActivityRepository) Create(activity *model.Activity) error {
	return r.DB.Create(activity).Error
}

func (r *ActivityRepository) FindByID(id uint) (*model.Activity, error) {
	var activity model.Activity
	err := r.DB.First(&activity, id).Error
	return &activity, err
}

func (r *ActivityRepository) List(activityType model.ActivityType, topic string, publishedOnly bool, page, limit int) ([]model.Activity, int64, error) {
	var activities []model.Activity
	var total int64

	query := r.DB.Model(&model.Activity{})
	if activityType != "" {
		query = query.Where("type = ?", activityType)
	}
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
		Find(&activities).Error
	return activities, total, err
}

// FindAllPublished returns the full published set, newest first, for
// recommendation catalog building.
func (r *ActivityRepository) FindAllPublished() ([]model.Activity, error) {
	var activities []model.Activity
	err := r.DB.Where("is_published = ?", true).
		Order("created_at DESC").
		Find(&activities).Error
	return activities, err
}

func (r *ActivityRepository) Update(activity *model.Activity) error {
	return r.DB.Save(activity).Error
}

func (r *ActivityRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Activity{}, id).Error
}
