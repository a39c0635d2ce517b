package repository

import (
	"learning_pulse_backend/internal/model"

	"gorm.io/gorm"
)

type LearningPathRepository struct {
	DB *gorm.DB
}

func NewLearningPathRepository(db *gorm.DB) *LearningPathRepository {
	return &LearningPathRepository{DB: db}
}

func (r *LearningPathRepository) Create(path *model.LearningPath) error {
	return r.DB.Create(path).Error
}

func (r *LearningPathRepository) FindByID(id uint) (*model.LearningPath, error) {
	var path model.LearningPath
	err := r.DB.Preload("Nodes", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&path, id).Error
	return &path, err
}

func (r *LearningPathRepository) List(publishedOnly bool, page, limit int) ([]model.LearningPath, int64, error) {
	var paths []model.LearningPath
	var total int64

	query := r.DB.Model(&model.LearningPath{})
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Nodes", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Order("id ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&paths).Error
	return paths, total, err
}

func (r *LearningPathRepository) FindAllPublished() ([]model.LearningPath, error) {
	var paths []model.LearningPath
	err := r.DB.Preload("Nodes").
		Where("is_published = ?", true).
		Order("created_at DESC").
		Find(&paths).Error
	return paths, err
}

// Update replaces the path row and its node list in one transaction.
func (r *LearningPathRepository) Update(path *model.LearningPath) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("path_id = ?", path.ID).Delete(&model.PathNode{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(path).Error
	})
}

func (r *LearningPathRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("path_id = ?", id).Delete(&model.PathNode{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.LearningPath{}, id).Error
	})
}
