package repository

import (
	"gorm.io/gorm"

	"taskmanager/internal/models"
)

// GormTaskTypeRepository is a GORM implementation of TaskTypeRepository
type GormTaskTypeRepository struct {
	db *gorm.DB
}

// NewTaskTypeRepository creates a new TaskTypeRepository
func NewTaskTypeRepository(db *gorm.DB) TaskTypeRepository {
	return &GormTaskTypeRepository{db: db}
}

// Create creates a new task type
func (r *GormTaskTypeRepository) Create(taskType *models.TaskType) error {
	return r.db.Create(taskType).Error
}

// FindByID finds a task type by ID
func (r *GormTaskTypeRepository) FindByID(id uint64) (*models.TaskType, error) {
	var taskType models.TaskType
	if err := r.db.First(&taskType, id).Error; err != nil {
		return nil, err
	}
	return &taskType, nil
}

// FindByName finds a task type by its unique name
func (r *GormTaskTypeRepository) FindByName(name string) (*models.TaskType, error) {
	var taskType models.TaskType
	if err := r.db.Where("name = ?", name).First(&taskType).Error; err != nil {
		return nil, err
	}
	return &taskType, nil
}

// List lists all task types
func (r *GormTaskTypeRepository) List() ([]models.TaskType, error) {
	var taskTypes []models.TaskType
	if err := r.db.Order("task_types.name ASC").Find(&taskTypes).Error; err != nil {
		return nil, err
	}
	return taskTypes, nil
}

// Delete removes a task type and cascades to its tasks, their assignments
// and their commentaries.
func (r *GormTaskTypeRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var taskIDs []uint64
		if err := tx.Model(&models.Task{}).
			Where("task_type_id = ?", id).
			Pluck("id", &taskIDs).Error; err != nil {
			return err
		}

		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.TaskAssignment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.Commentary{}).Error; err != nil {
				return err
			}
			if err := tx.Where("task_type_id = ?", id).Delete(&models.Task{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.TaskType{}, id).Error
	})
}
