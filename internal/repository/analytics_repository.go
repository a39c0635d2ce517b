package repository

import (
	"time"

	"learning_pulse_backend/internal/model"

	"gorm.io/gorm"
)

type AnalyticsRepository struct {
	DB *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

func (r *AnalyticsRepository) CreateEvent(event *model.InteractionEvent) error {
	return r.DB.Create(event).Error
}

func (r *AnalyticsRepository) CreateEvents(events []model.InteractionEvent) error {
	if len(events) == 0 {
		return nil
	}
	return r.DB.CreateInBatches(events, 200).Error
}

func (r *AnalyticsRepository) FindByStudent(studentID uint, from, to time.Time) ([]model.InteractionEvent, error) {
	var events []model.InteractionEvent
	query := r.DB.Where("student_id = ?", studentID)
	if !from.IsZero() {
		query = query.Where("occurred_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("occurred_at < ?", to)
	}
	err := query.Order("occurred_at ASC").Find(&events).Error
	return events, err
}

func (r *AnalyticsRepository) FindByTopic(topicID string, from, to time.Time) ([]model.InteractionEvent, error) {
	var events []model.InteractionEvent
	query := r.DB.Where("topic_id = ?", topicID)
	if !from.IsZero() {
		query = query.Where("occurred_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("occurred_at < ?", to)
	}
	err := query.Order("occurred_at ASC").Find(&events).Error
	return events, err
}

// DeleteByStudent removes every event for a student, used for erasure requests.
func (r *AnalyticsRepository) DeleteByStudent(studentID uint) error {
	return r.DB.Unscoped().
		Where("student_id = ?", studentID).
		Delete(&model.InteractionEvent{}).Error
}

func (r *AnalyticsRepository) CountEventsSince(since time.Time) (int64, error) {
	var n int64
	err := r.DB.Model(&model.InteractionEvent{}).
		Where("occurred_at >= ?", since).
		Count(&n).Error
	return n, err
}
